package service

import (
	"strings"
	"testing"

	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/madrasa-lms/madrasa/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	const size = 1000

	tests := []struct {
		name      string
		header    string
		wantStart int64
		wantEnd   int64
		full      bool
		wantErr   bool
	}{
		{name: "no header", header: "", full: true},
		{name: "open ended", header: "bytes=0-", wantStart: 0, wantEnd: 999},
		{name: "bounded", header: "bytes=100-199", wantStart: 100, wantEnd: 199},
		{name: "tail", header: "bytes=900-", wantStart: 900, wantEnd: 999},
		{name: "end clamped to size", header: "bytes=900-5000", wantStart: 900, wantEnd: 999},
		{name: "single byte", header: "bytes=0-0", wantStart: 0, wantEnd: 0},
		{name: "last byte", header: "bytes=999-999", wantStart: 999, wantEnd: 999},
		{name: "malformed falls back to full", header: "bytes=abc-def", full: true},
		{name: "suffix form unsupported", header: "bytes=-500", full: true},
		{name: "multi-range unsupported", header: "bytes=0-1,5-9", full: true},
		{name: "wrong unit", header: "items=0-10", full: true},
		{name: "start at eof", header: "bytes=1000-", wantErr: true},
		{name: "start beyond eof", header: "bytes=5000-6000", wantErr: true},
		{name: "inverted", header: "bytes=200-100", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng, err := ParseRange(tc.header, size)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindRangeNotSatisfiable, apperror.KindOf(err))
				return
			}
			require.NoError(t, err)
			if tc.full {
				assert.Nil(t, rng)
				return
			}
			require.NotNil(t, rng)
			assert.Equal(t, tc.wantStart, rng.Start)
			assert.Equal(t, tc.wantEnd, rng.End)
			assert.Equal(t, tc.wantEnd-tc.wantStart+1, rng.Length())
		})
	}
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeFor("pdfs/lesson_1.pdf"))
	assert.Equal(t, "video/mp4", ContentTypeFor("videos/lesson_1.mp4"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("videos/lesson_1.weird"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("noext"))
}

func newMediaFixture(t *testing.T) (MediaService, *storage.FSStore, repository.LessonRepository) {
	t.Helper()
	db := newTestDB(t)
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	lessonRepo := repository.NewLessonRepository(db)
	return NewMediaService(lessonRepo, store), store, lessonRepo
}

func TestOpenLessonVideo(t *testing.T) {
	svc, store, lessonRepo := newMediaFixture(t)

	_, err := store.Put("videos/lesson_1.mp4", strings.NewReader("0123456789"))
	require.NoError(t, err)

	lesson := &model.Lesson{Title: "Visible", LessonType: model.LessonVideo, VideoFile: "videos/lesson_1.mp4"}
	require.NoError(t, lessonRepo.Create(lesson))

	f, info, err := svc.OpenLessonVideo(lesson.ID, model.RoleStudent)
	require.NoError(t, err)
	defer f.Close()
	assert.EqualValues(t, 10, info.Size)
	assert.Equal(t, "video/mp4", info.ContentType)
}

func TestOpenLessonVideoHiddenLesson(t *testing.T) {
	svc, store, lessonRepo := newMediaFixture(t)

	_, err := store.Put("videos/lesson_1.mp4", strings.NewReader("0123456789"))
	require.NoError(t, err)

	lesson := &model.Lesson{Title: "Hidden", IsHidden: true, VideoFile: "videos/lesson_1.mp4"}
	require.NoError(t, lessonRepo.Create(lesson))

	_, _, err = svc.OpenLessonVideo(lesson.ID, model.RoleStudent)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	// Admins stream hidden media fine.
	f, _, err := svc.OpenLessonVideo(lesson.ID, model.RoleAdmin)
	require.NoError(t, err)
	f.Close()
}

func TestOpenLessonMediaMissing(t *testing.T) {
	svc, _, lessonRepo := newMediaFixture(t)

	lesson := &model.Lesson{Title: "No media"}
	require.NoError(t, lessonRepo.Create(lesson))

	_, _, err := svc.OpenLessonVideo(lesson.ID, model.RoleStudent)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, _, err = svc.OpenLessonPDF(lesson.ID, model.RoleStudent)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, _, err = svc.OpenLessonVideo(9999, model.RoleStudent)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
