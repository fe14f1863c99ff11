package db_test

import (
	"testing"

	"github.com/sgoyal/qbank-go/internal/testutil"
)

func TestForeignKeyCascadeDelete(t *testing.T) {
	// Setup test database with migrations already applied
	db := testutil.SetupTestDB(t)

	// Verify foreign keys are enabled
	var foreignKeysEnabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeysEnabled)
	if err != nil {
		t.Fatalf("Failed to check foreign keys status: %v", err)
	}
	if foreignKeysEnabled != 1 {
		t.Errorf("Foreign keys should be enabled, got: %d", foreignKeysEnabled)
	}

	// Create an upload with a question attached to it
	_, err = db.Exec("INSERT INTO uploads (file_id, filename, file_path, status, upload_time) VALUES (?, ?, ?, ?, datetime('now'))",
		"file-1", "doc.pdf", "/tmp/doc.pdf", "uploaded")
	if err != nil {
		t.Fatalf("Failed to create test upload: %v", err)
	}
	_, err = db.Exec("INSERT INTO questions (file_id, type, question, correct_answer, created_at, updated_at) VALUES (?, ?, ?, ?, datetime('now'), datetime('now'))",
		"file-1", "true_false", "The Earth is flat.", "False")
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	// Deleting the upload must cascade to its questions
	_, err = db.Exec("DELETE FROM uploads WHERE file_id = 'file-1'")
	if err != nil {
		t.Fatalf("Failed to delete upload: %v", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM questions WHERE file_id = 'file-1'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count questions: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 questions after upload deletion, got %d", count)
	}

	// Deleting a user must cascade to their sessions
	_, err = db.Exec("INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, datetime('now'))",
		"testuser", "hash", "user")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	_, err = db.Exec("INSERT INTO sessions (token, user_id, expiry) VALUES (?, ?, datetime('now', '+1 day'))", "tok", 1)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	_, err = db.Exec("DELETE FROM users WHERE id = 1")
	if err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}
	err = db.QueryRow("SELECT COUNT(*) FROM sessions WHERE user_id = 1").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count sessions: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 sessions after user deletion, got %d", count)
	}
}
