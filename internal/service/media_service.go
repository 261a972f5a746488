package service

import (
	"errors"
	"mime"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/madrasa-lms/madrasa/internal/storage"
	"gorm.io/gorm"
)

// MediaService resolves lesson media through the blob store, applying the
// same visibility rule as lesson viewing: hidden lessons are admin-only.
type MediaService interface {
	OpenLessonVideo(lessonID uint, role model.Role) (storage.File, *MediaInfo, error)
	OpenLessonPDF(lessonID uint, role model.Role) (storage.File, *MediaInfo, error)
}

type MediaInfo struct {
	Size        int64
	ContentType string
}

type mediaService struct {
	lessonRepo repository.LessonRepository
	blobs      storage.BlobStore
}

func NewMediaService(lessonRepo repository.LessonRepository, blobs storage.BlobStore) MediaService {
	return &mediaService{lessonRepo: lessonRepo, blobs: blobs}
}

func (s *mediaService) OpenLessonVideo(lessonID uint, role model.Role) (storage.File, *MediaInfo, error) {
	return s.open(lessonID, role, func(l *model.Lesson) string { return l.VideoFile })
}

func (s *mediaService) OpenLessonPDF(lessonID uint, role model.Role) (storage.File, *MediaInfo, error) {
	return s.open(lessonID, role, func(l *model.Lesson) string { return l.PDFFile })
}

func (s *mediaService) open(lessonID uint, role model.Role, key func(*model.Lesson) string) (storage.File, *MediaInfo, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFound("lesson not found")
		}
		return nil, nil, err
	}
	if !lesson.VisibleTo(role) {
		return nil, nil, apperror.Forbidden("this lesson is not available")
	}
	k := key(lesson)
	if k == "" {
		return nil, nil, apperror.NotFound("lesson has no media file")
	}
	f, size, err := s.blobs.Open(k)
	if err != nil {
		return nil, nil, apperror.Wrap(apperror.KindNotFound, "media file not found", err)
	}
	return f, &MediaInfo{Size: size, ContentType: ContentTypeFor(k)}, nil
}

// ContentTypeFor derives the content type from the file extension, with a
// generic default for unknown extensions.
func ContentTypeFor(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var rangePattern = regexp.MustCompile(`^bytes=(\d+)-(\d*)$`)

// ByteRange is a resolved, inclusive byte range within a resource.
type ByteRange struct {
	Start int64
	End   int64
}

func (r ByteRange) Length() int64 { return r.End - r.Start + 1 }

// ParseRange interprets a Range header against a resource of the given size.
// A missing or malformed header returns (nil, nil): the caller should send
// the full resource. A well-formed but unsatisfiable range (start beyond EOF,
// or end before start) is an error, not a full-body fallback.
func ParseRange(header string, size int64) (*ByteRange, error) {
	if header == "" {
		return nil, nil
	}
	m := rangePattern.FindStringSubmatch(header)
	if m == nil {
		return nil, nil
	}
	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil, nil
	}
	end := size - 1
	if m[2] != "" {
		end, err = strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return nil, nil
		}
	}
	if end > size-1 {
		end = size - 1
	}
	if start >= size || end < start {
		return nil, apperror.RangeNotSatisfiable("requested range not satisfiable")
	}
	return &ByteRange{Start: start, End: end}, nil
}
