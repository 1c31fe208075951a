// Package state holds the authoritative in-memory task and list collections
// for the session and keeps the snapshot store in step with them. Every
// mutation goes through the Container; views only read.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/octaltask/octaltask/internal/identity"
	"github.com/octaltask/octaltask/internal/models"
	"github.com/octaltask/octaltask/internal/store"
)

var (
	// ErrNotFound means the operation referenced an id nobody holds.
	ErrNotFound = errors.New("not found")
	// ErrStale means the entity was deleted or changed while an operation
	// was waiting on a collaborator; the local mutation was abandoned.
	ErrStale = errors.New("entity changed during operation")
)

// CommentSink confirms comments with the backend. api.Client satisfies it.
type CommentSink interface {
	CreateComment(ctx context.Context, taskID, content string) (models.Comment, error)
	DeleteComment(ctx context.Context, taskID, commentID string) error
}

// Uploader stores attachment contents externally and returns the metadata
// the container keeps. api.Client satisfies it.
type Uploader interface {
	UploadAttachment(ctx context.Context, taskID, fileName string, contents io.Reader) (models.Attachment, error)
}

// Container is the single owner of the task and list collections.
//
// All reads and writes take the mutex; collaborator calls happen outside it
// and are guarded against concurrent deletes by per-entity version stamps
// rather than by holding the lock across the network.
type Container struct {
	mu    sync.Mutex
	tasks []models.Task
	lists []models.TaskList

	// commentIndex maps comment id to owning task id so comment deletes
	// do not scan every task.
	commentIndex map[string]string
	// versions bumps on every mutation of an entity; stale async writes
	// compare against it before landing.
	versions map[string]uint64

	loading bool
	loadErr error

	store    store.Store
	identity identity.Provider
	comments CommentSink
	uploader Uploader
	logger   *log.Logger
}

// New creates an empty container. Call Load before use.
func New(st store.Store, provider identity.Provider, logger *log.Logger) *Container {
	if logger == nil {
		logger = log.Default()
	}
	return &Container{
		commentIndex: map[string]string{},
		versions:     map[string]uint64{},
		loading:      true,
		store:        st,
		identity:     provider,
		logger:       logger,
	}
}

// SetCommentSink wires the backend comment collaborator. Without one,
// comment adds confirm locally.
func (c *Container) SetCommentSink(s CommentSink) { c.comments = s }

// SetUploader wires the attachment upload collaborator. Without one,
// AddAttachment fails.
func (c *Container) SetUploader(u Uploader) { c.uploader = u }

// Load pulls both collections from the store. A missing snapshot seeds
// defaults and persists them right away; a failed read leaves the container
// usable with empty collections and records the error, which clears again on
// the first successful persist.
func (c *Container) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.loading = false }()

	tasksOK, err := c.loadCollection(store.KeyTasks, &c.tasks)
	if err != nil {
		c.loadErr = err
		return
	}
	listsOK, err := c.loadCollection(store.KeyLists, &c.lists)
	if err != nil {
		c.loadErr = err
		return
	}

	if !listsOK {
		c.lists = c.seedLists()
		if err := c.persistLists(); err != nil {
			c.logger.Printf("state: persist seed lists: %v", err)
		}
	}
	if !tasksOK {
		c.tasks = c.seedTasks()
		if err := c.persistTasks(); err != nil {
			c.logger.Printf("state: persist seed tasks: %v", err)
		}
	}

	for _, t := range c.tasks {
		for _, cm := range t.Comments {
			c.commentIndex[cm.ID] = t.ID
		}
	}
}

func (c *Container) loadCollection(key string, into any) (bool, error) {
	data, ok, err := c.store.Load(key)
	if err != nil {
		return false, fmt.Errorf("state: load %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("state: decode %q: %w", key, err)
	}
	return true, nil
}

func (c *Container) actor() models.User {
	if u := c.identity.CurrentUser(); u != nil {
		return *u
	}
	return identity.Anonymous()
}

// First-run seed so the app does not open onto an empty screen.
func (c *Container) seedLists() []models.TaskList {
	now := models.Timestamp()
	return []models.TaskList{{
		ID:        models.NewID(),
		Name:      "Personal",
		Color:     models.ColorBlue,
		Icon:      models.IconPersonal,
		OwnerID:   c.actor().ID,
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

func (c *Container) seedTasks() []models.Task {
	now := models.Timestamp()
	var listID *string
	if len(c.lists) > 0 {
		id := c.lists[0].ID
		listID = &id
	}
	return []models.Task{{
		ID:        models.NewID(),
		Title:     "Welcome to OctalTask",
		Notes:     "Add your first task, or press ? for help.",
		ListID:    listID,
		Subtasks:  []models.SubTask{},
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

// Loading reports whether the initial load is still running.
func (c *Container) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LoadErr returns the startup load failure, if any. It clears once a later
// persist succeeds.
func (c *Container) LoadErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// persistTasks re-serializes the whole task collection. Must hold mu.
func (c *Container) persistTasks() error {
	bs, err := json.Marshal(c.tasks)
	if err != nil {
		return fmt.Errorf("state: encode tasks: %w", err)
	}
	if err := c.store.Save(store.KeyTasks, bs); err != nil {
		c.logger.Printf("state: persist tasks: %v", err)
		return err
	}
	c.loadErr = nil
	return nil
}

// persistLists re-serializes the whole list collection. Must hold mu.
func (c *Container) persistLists() error {
	bs, err := json.Marshal(c.lists)
	if err != nil {
		return fmt.Errorf("state: encode lists: %w", err)
	}
	if err := c.store.Save(store.KeyLists, bs); err != nil {
		c.logger.Printf("state: persist lists: %v", err)
		return err
	}
	c.loadErr = nil
	return nil
}

// taskIndex returns the position of id in the task collection, or -1.
// Must hold mu.
func (c *Container) taskIndex(id string) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// listIndex returns the position of id in the list collection, or -1.
// Must hold mu.
func (c *Container) listIndex(id string) int {
	for i := range c.lists {
		if c.lists[i].ID == id {
			return i
		}
	}
	return -1
}
