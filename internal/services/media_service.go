package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"rtw_backend/internal/auth"
	"rtw_backend/internal/config"
	"rtw_backend/internal/logger"
	"rtw_backend/internal/models"
	"rtw_backend/internal/repositories"
	"rtw_backend/internal/services/dto"
	"rtw_backend/internal/storage"
	"rtw_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaService interface {
	Upload(ctx context.Context, db *gorm.DB, principal *auth.Principal, file *multipart.FileHeader, alt string) (*dto.MediaDTO, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*dto.MediaDTO, error)
	Delete(ctx context.Context, db *gorm.DB, principal *auth.Principal, id string) error
}

type MediaServiceImpl struct {
	mediaRepo repositories.MediaRepository
	store     storage.Storage
	cfg       *config.Config
}

func NewMediaService(mediaRepo repositories.MediaRepository, store storage.Storage, cfg *config.Config) MediaService {
	return &MediaServiceImpl{mediaRepo: mediaRepo, store: store, cfg: cfg}
}

// Upload validates size and content type, stores the bytes and records the
// metadata row owned by the caller.
func (s *MediaServiceImpl) Upload(ctx context.Context, db *gorm.DB, principal *auth.Principal, file *multipart.FileHeader, alt string) (*dto.MediaDTO, error) {
	if file.Size > s.cfg.Upload.MaxSize {
		return nil, apperrors.ErrMediaTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !s.allowedType(contentType) {
		return nil, apperrors.ErrUnsupportedMediaType
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := fmt.Sprintf("%s/%d/%s%s", principal.Kind, time.Now().Year(), uuid.NewString(), ext)

	if err := s.store.Save(ctx, path, src, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	media := &models.Media{
		OwnerKind: principal.Kind,
		OwnerID:   principal.ID,
		Alt:       alt,
		Path:      path,
		URL:       url,
		MimeType:  contentType,
		Size:      file.Size,
		Filename:  filepath.Base(file.Filename),
	}

	if err := s.mediaRepo.Create(db, media); err != nil {
		// The row failed, so the stored bytes are orphaned; best effort cleanup.
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			logger.CtxWithError(ctx, "failed to clean up orphaned upload", delErr, "path", path)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "media uploaded", "media_id", media.ID, "size", media.Size)

	out := dto.MediaDTOFromModel(media)
	return &out, nil
}

func (s *MediaServiceImpl) Get(ctx context.Context, db *gorm.DB, id string) (*dto.MediaDTO, error) {
	media, err := s.mediaRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMediaNotFound) {
			return nil, apperrors.ErrMediaNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	out := dto.MediaDTOFromModel(media)
	return &out, nil
}

// Delete removes the row and the stored bytes. Only the owner (or an admin)
// may delete.
func (s *MediaServiceImpl) Delete(ctx context.Context, db *gorm.DB, principal *auth.Principal, id string) error {
	media, err := s.mediaRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMediaNotFound) {
			return apperrors.ErrMediaNotFound
		}
		return apperrors.InternalError(err)
	}

	owned := media.OwnerKind == principal.Kind && media.OwnerID == principal.ID
	if !owned && !principal.IsAdmin() {
		return apperrors.NewForbiddenError("You cannot delete this file")
	}

	if err := s.mediaRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.store.Delete(ctx, media.Path); err != nil {
		logger.CtxWithError(ctx, "failed to delete stored file", err, "path", media.Path)
	}

	return nil
}

func (s *MediaServiceImpl) allowedType(contentType string) bool {
	for _, allowed := range s.cfg.Upload.AllowedTypes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}
