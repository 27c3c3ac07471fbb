package event

import (
	"testing"
	"time"
)

func TestDebouncer(t *testing.T) {
	debounceWindow := 100 * time.Millisecond
	d := NewDebouncer(debounceWindow)

	event1 := &Event{
		Provider:  "github",
		RepoOwner: "owner",
		RepoName:  "repo",
		Number:    42,
		CommentID: 1001,
	}

	if !d.ShouldProcess(event1) {
		t.Error("First event should be accepted")
	}

	// Redelivery immediately after should be debounced
	if d.ShouldProcess(event1) {
		t.Error("Duplicate event should be debounced")
	}

	time.Sleep(debounceWindow + 10*time.Millisecond)

	if !d.ShouldProcess(event1) {
		t.Error("Event after debounce window should be accepted")
	}
}

func TestDebouncer_DifferentComments(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)

	event1 := &Event{Provider: "github", RepoOwner: "owner", RepoName: "repo", Number: 42, CommentID: 1}
	event2 := &Event{Provider: "github", RepoOwner: "owner", RepoName: "repo", Number: 42, CommentID: 2}

	d.ShouldProcess(event1)

	if !d.ShouldProcess(event2) {
		t.Error("Different comment should be accepted")
	}
}

func TestDebouncer_Cleanup(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	d.ShouldProcess(&Event{Provider: "gitlab", RepoOwner: "o", RepoName: "r", Number: 1, CommentID: 1})
	time.Sleep(30 * time.Millisecond)
	d.ShouldProcess(&Event{Provider: "gitlab", RepoOwner: "o", RepoName: "r", Number: 1, CommentID: 2})

	d.Cleanup()

	if got := d.Len(); got != 1 {
		t.Errorf("Len() after Cleanup = %d, want 1", got)
	}
}
