package main

import (
	"testing"
)

func TestNewRepository(t *testing.T) {
	tests := []struct {
		name           string
		settings       GithubSettings
		expectedString string
		expectedBranch string
		expectError    bool
	}{
		{
			name:           "valid repo spec",
			settings:       GithubSettings{Repo: "acme/widgets"},
			expectedString: "acme/widgets",
			expectedBranch: "main",
		},
		{
			name:           "configured branch",
			settings:       GithubSettings{Repo: "acme/widgets", Branch: "release"},
			expectedString: "acme/widgets",
			expectedBranch: "release",
		},
		{
			name:        "missing name",
			settings:    GithubSettings{Repo: "acme"},
			expectError: true,
		},
		{
			name:        "too many parts",
			settings:    GithubSettings{Repo: "acme/widgets/extra"},
			expectError: true,
		},
		{
			name:        "empty owner",
			settings:    GithubSettings{Repo: "/widgets"},
			expectError: true,
		},
		{
			name:        "empty spec",
			settings:    GithubSettings{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewRepository(tt.settings, NewClient(""))

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if repo.String() != tt.expectedString {
				t.Errorf("Expected %s, got: %s", tt.expectedString, repo.String())
			}
			if repo.branch != tt.expectedBranch {
				t.Errorf("Expected branch %s, got: %s", tt.expectedBranch, repo.branch)
			}
		})
	}
}
