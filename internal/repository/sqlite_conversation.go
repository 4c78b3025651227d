// Package repository persists assistant conversations in SQLite so that
// chat sessions survive between invocations of the TUI.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Conversation is one stored chat session tied to a roadmap file.
type Conversation struct {
	ID         string
	RoadmapRef string
	Title      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Message is one stored turn of a conversation.
type Message struct {
	ID             string
	ConversationID string
	Seq            int
	Role           string // "user" or "assistant"
	Content        string
	Source         string // "llm" or "fallback", empty for user turns
	CreatedAt      time.Time
}

// ConversationRepo stores and retrieves assistant chat history.
type ConversationRepo interface {
	Create(ctx context.Context, roadmapRef, title string) (*Conversation, error)
	Get(ctx context.Context, id string) (*Conversation, error)
	Latest(ctx context.Context, roadmapRef string) (*Conversation, error)
	AppendMessage(ctx context.Context, conversationID, role, content, source string) (*Message, error)
	Messages(ctx context.Context, conversationID string) ([]*Message, error)
	Delete(ctx context.Context, id string) error
}

// SQLiteConversationRepo implements ConversationRepo on SQLite.
type SQLiteConversationRepo struct {
	db *sql.DB
}

// NewSQLiteConversationRepo creates a SQLiteConversationRepo.
func NewSQLiteConversationRepo(db *sql.DB) *SQLiteConversationRepo {
	return &SQLiteConversationRepo{db: db}
}

func (r *SQLiteConversationRepo) Create(ctx context.Context, roadmapRef, title string) (*Conversation, error) {
	now := time.Now().UTC()
	conv := &Conversation{
		ID:         uuid.New().String(),
		RoadmapRef: roadmapRef,
		Title:      title,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO conversations (id, roadmap_ref, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		conv.ID, conv.RoadmapRef, conv.Title,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting conversation: %w", err)
	}
	return conv, nil
}

func (r *SQLiteConversationRepo) Get(ctx context.Context, id string) (*Conversation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, roadmap_ref, title, created_at, updated_at FROM conversations WHERE id = ?`, id)
	return scanConversation(row)
}

// Latest returns the most recently updated conversation for a roadmap
// file, or nil when none exists yet.
func (r *SQLiteConversationRepo) Latest(ctx context.Context, roadmapRef string) (*Conversation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, roadmap_ref, title, created_at, updated_at FROM conversations
		 WHERE roadmap_ref = ? ORDER BY updated_at DESC LIMIT 1`, roadmapRef)
	conv, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return conv, err
}

func (r *SQLiteConversationRepo) AppendMessage(ctx context.Context, conversationID, role, content, source string) (*Message, error) {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE conversation_id = ?`,
		conversationID).Scan(&seq); err != nil {
		return nil, fmt.Errorf("allocating message seq: %w", err)
	}

	msg := &Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Seq:            seq,
		Role:           role,
		Content:        content,
		Source:         source,
		CreatedAt:      now,
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, seq, role, content, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.ConversationID, msg.Seq, msg.Role, msg.Content, msg.Source,
		now.Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		now.Format(time.RFC3339Nano), conversationID,
	); err != nil {
		return nil, fmt.Errorf("touching conversation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing message: %w", err)
	}
	return msg, nil
}

func (r *SQLiteConversationRepo) Messages(ctx context.Context, conversationID string) ([]*Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, conversation_id, seq, role, content, source, created_at
		 FROM messages WHERE conversation_id = ? ORDER BY seq`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var m Message
		var created string
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Seq, &m.Role, &m.Content, &m.Source, &created); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

func (r *SQLiteConversationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (*Conversation, error) {
	var c Conversation
	var created, updated string
	if err := row.Scan(&c.ID, &c.RoadmapRef, &c.Title, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	c.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return &c, nil
}
