package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestScriptValidate(t *testing.T) {
	t.Parallel()
	valid := Script{
		ID:       uuid.New(),
		TopicID:  uuid.New(),
		Platform: PlatformTikTok,
		Title:    "Why everyone is talking about this",
		Body:     "Hook. Payoff. Call to action.",
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(s Script) Script
		wantErr error
	}{
		{
			name:    "nil ID",
			mutate:  func(s Script) Script { s.ID = uuid.Nil; return s },
			wantErr: ErrEmptyScriptID,
		},
		{
			name:    "nil topic ID",
			mutate:  func(s Script) Script { s.TopicID = uuid.Nil; return s },
			wantErr: ErrEmptyScriptTopicID,
		},
		{
			name:    "empty body",
			mutate:  func(s Script) Script { s.Body = ""; return s },
			wantErr: ErrEmptyScriptBody,
		},
		{
			name:    "unsupported platform",
			mutate:  func(s Script) Script { s.Platform = "myspace"; return s },
			wantErr: ErrInvalidPlatform,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			broken := tc.mutate(valid)
			if err := broken.Validate(); err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestPlatforms(t *testing.T) {
	t.Parallel()
	got := Platforms()
	if len(got) != 4 {
		t.Fatalf("Expected 4 platforms, got %d", len(got))
	}

	// Callers must not be able to mutate the canonical set
	got[0] = "myspace"
	if Platforms()[0] != PlatformYouTube {
		t.Error("Platforms() should return a fresh slice each call")
	}
}
