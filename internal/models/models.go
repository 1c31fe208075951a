package models

// Role governs what a collaborator may do with a shared task or list.
// Enforcement happens on the backend; the client only carries the value.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// List color tags.
const (
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorPurple = "purple"
	ColorAmber  = "amber"
	ColorBlack  = "black"
)

// List icon tags.
const (
	IconPersonal = "personal"
	IconWork     = "work"
	IconHome     = "home"
	IconStudy    = "study"
	IconDefault  = "default"
)

// ValidColor reports whether c is a known list color tag.
func ValidColor(c string) bool {
	switch c {
	case ColorBlue, ColorGreen, ColorRed, ColorPurple, ColorAmber, ColorBlack:
		return true
	}
	return false
}

// ValidIcon reports whether i is a known list icon tag.
func ValidIcon(i string) bool {
	switch i {
	case IconPersonal, IconWork, IconHome, IconStudy, IconDefault:
		return true
	}
	return false
}

// User is the authenticated account acting in the session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photoUrl,omitempty"`
}

// SubTask is owned by its parent task and has no independent lifecycle.
type SubTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Comment is a note left on a task by a user. Pending marks the optimistic
// phase of a comment add: the record is already visible locally but the
// collaborator has not confirmed it yet.
type Comment struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserPhoto string `json:"userPhoto,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	Pending   bool   `json:"pending,omitempty"`
}

// SharedUser is a collaborator attached to a task or list. The owner is
// implicit and never appears here.
type SharedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photoUrl,omitempty"`
	Role  Role   `json:"role"`
}

// Attachment holds metadata for a file uploaded through the upload
// collaborator; the file contents live behind URL.
type Attachment struct {
	ID         string `json:"id"`
	TaskID     string `json:"taskId"`
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	FileType   string `json:"fileType"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt"`
	UploaderID string `json:"uploaderId"`
}

// Task is a single actionable item.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Completed   bool         `json:"completed"`
	DueDate     *string      `json:"dueDate,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Starred     bool         `json:"starred,omitempty"`
	ListID      *string      `json:"listId,omitempty"`
	Subtasks    []SubTask    `json:"subtasks"`
	Comments    []Comment    `json:"comments"`
	Attachments []Attachment `json:"attachments,omitempty"`
	SharedWith  []SharedUser `json:"sharedWith,omitempty"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// TaskList is a named grouping of tasks. IsShared is derived: true iff
// SharedWith is non-empty.
type TaskList struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Color      string       `json:"color,omitempty"`
	Icon       string       `json:"icon,omitempty"`
	OwnerID    string       `json:"ownerId"`
	IsShared   bool         `json:"isShared"`
	SharedWith []SharedUser `json:"sharedWith,omitempty"`
	CreatedAt  string       `json:"createdAt"`
	UpdatedAt  string       `json:"updatedAt"`
}
