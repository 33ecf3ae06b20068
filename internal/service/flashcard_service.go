//go:generate mockery --name FlashcardService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"log/slog"

	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/repository"
	"go_5_kanji_keep/internal/webutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlashcardService interface {
	CreateFlashcard(ctx context.Context, userID uuid.UUID, req *model.CreateFlashcardRequest) (*model.Flashcard, error)
	ListFlashcards(ctx context.Context, userID uuid.UUID) ([]*model.Flashcard, error)
	DeleteFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) error
}

type flashcardService struct {
	db     *gorm.DB
	repo   repository.FlashcardRepository
	logger *slog.Logger
}

func NewFlashcardService(db *gorm.DB, repo repository.FlashcardRepository, logger *slog.Logger) FlashcardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &flashcardService{db: db, repo: repo, logger: logger}
}

// CreateFlashcard は前後の空白を取り除いてから kanji / meaning の必須チェックを行い、カードを作成します。
// 検証に失敗した場合はリポジトリを呼びません。
func (s *flashcardService) CreateFlashcard(ctx context.Context, userID uuid.UUID, req *model.CreateFlashcardRequest) (*model.Flashcard, error) {
	if req == nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "Kanji is required", "kanji", model.ErrInvalidInput)
	}
	req.Normalize()
	if err := webutil.ValidateStruct(req); err != nil {
		return nil, err
	}

	card := &model.Flashcard{
		ID:      uuid.New(),
		UserID:  userID,
		Kanji:   req.Kanji,
		Onyomi:  req.Onyomi,
		Kunyomi: req.Kunyomi,
		Meaning: req.Meaning,
		Example: req.Example,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, card); err != nil {
			s.logger.ErrorContext(ctx, "Error creating flashcard in repo", slog.Any("error", err), slog.String("user_id", userID.String()))
			return model.ErrInternalServer
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// ListFlashcards はユーザーのカードを新しい順に返します。
func (s *flashcardService) ListFlashcards(ctx context.Context, userID uuid.UUID) ([]*model.Flashcard, error) {
	cards, err := s.repo.FindByUser(ctx, s.db, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error listing flashcards", slog.Any("error", err), slog.String("user_id", userID.String()))
		return nil, model.ErrInternalServer
	}
	if cards == nil {
		cards = []*model.Flashcard{}
	}
	return cards, nil
}

// DeleteFlashcard は所有者本人の場合のみ削除します。
// 存在しなければ ErrNotFound、他人のカードなら ErrUnauthorized。
func (s *flashcardService) DeleteFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := s.repo.FindByID(ctx, tx, flashcardID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("FLASHCARD_NOT_FOUND", "Flashcard not found.", "", model.ErrNotFound)
			}
			s.logger.ErrorContext(ctx, "Error finding flashcard for delete", slog.Any("error", err), slog.String("flashcard_id", flashcardID.String()))
			return model.ErrInternalServer
		}
		if card.UserID != userID {
			s.logger.WarnContext(ctx, "Attempt to delete another user's flashcard",
				slog.String("user_id", userID.String()),
				slog.String("flashcard_id", flashcardID.String()),
			)
			return model.NewAppError("UNAUTHORIZED", "Unauthorized", "", model.ErrUnauthorized)
		}
		if err := s.repo.Delete(ctx, tx, userID, flashcardID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("FLASHCARD_NOT_FOUND", "Flashcard not found.", "", model.ErrNotFound)
			}
			s.logger.ErrorContext(ctx, "Error deleting flashcard", slog.Any("error", err), slog.String("flashcard_id", flashcardID.String()))
			return model.ErrInternalServer
		}
		return nil
	})
}
