package state

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/octaltask/octaltask/internal/models"
)

type fakeUploader struct {
	err  error
	read string
}

func (f *fakeUploader) UploadAttachment(_ context.Context, taskID, fileName string, contents io.Reader) (models.Attachment, error) {
	if f.err != nil {
		return models.Attachment{}, f.err
	}
	bs, _ := io.ReadAll(contents)
	f.read = string(bs)
	return models.Attachment{
		ID:         "att-1",
		FileName:   fileName,
		FileSize:   int64(len(bs)),
		FileType:   "text/plain",
		URL:        "https://files.example.com/att-1",
		UploadedAt: models.Timestamp(),
	}, nil
}

func TestContainer_AddAttachment(t *testing.T) {
	is := is.New(t)
	c, _ := newTestContainer(t)
	up := &fakeUploader{}
	c.SetUploader(up)

	task, err := c.AddTask(models.Task{Title: "t"})
	is.NoErr(err)

	att, err := c.AddAttachment(context.Background(), task.ID, "notes.txt", strings.NewReader("contents"))
	is.NoErr(err)
	is.Equal(att.FileName, "notes.txt")
	is.Equal(att.FileSize, int64(8))
	is.Equal(att.TaskID, task.ID)  // filled in when the backend leaves it blank
	is.Equal(att.UploaderID, "u1") // stamped with the acting user
	is.Equal(up.read, "contents")

	got, err := c.TaskByID(task.ID)
	is.NoErr(err)
	is.Equal(len(got.Attachments), 1)

	t.Run("remove", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(c.RemoveAttachment(task.ID, att.ID))
		got, err := c.TaskByID(task.ID)
		is.NoErr(err)
		is.Equal(len(got.Attachments), 0)
		is.Equal(c.RemoveAttachment(task.ID, att.ID), ErrNotFound)
	})
}

func TestContainer_AddAttachmentErrors(t *testing.T) {
	is := is.New(t)
	c, _ := newTestContainer(t)

	task, err := c.AddTask(models.Task{Title: "t"})
	is.NoErr(err)

	// no collaborator wired
	_, err = c.AddAttachment(context.Background(), task.ID, "f", strings.NewReader(""))
	is.Equal(err, ErrNoUploader)

	boom := errors.New("upload rejected")
	c.SetUploader(&fakeUploader{err: boom})
	_, err = c.AddAttachment(context.Background(), task.ID, "f", strings.NewReader(""))
	is.Equal(err, boom)

	_, err = c.AddAttachment(context.Background(), "missing", "f", strings.NewReader(""))
	is.Equal(err, ErrNotFound)
}
