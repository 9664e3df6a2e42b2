package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
)

// PathwayRepositoryContractTest is a reusable test suite that verifies if an adapter complies with ports.PathwayRepository.
// The repository must be empty for interestID when the suite starts.
func PathwayRepositoryContractTest(t *testing.T, repo ports.PathwayRepository, interestID int) {
	t.Helper()
	ctx := context.Background()

	t.Run("List_EmptyInterest", func(t *testing.T) {
		set, err := repo.List(ctx, interestID)
		if err != nil {
			t.Fatalf("unexpected error listing empty interest: %v", err)
		}
		if set.Len() != 0 {
			t.Errorf("expected empty node set, got %d nodes", set.Len())
		}
	})

	var career domain.PathwayNode

	t.Run("Upsert_AssignsID", func(t *testing.T) {
		course, err := repo.Upsert(ctx, domain.PathwayNode{
			InterestID:  interestID,
			PathwayType: domain.PathwayCourse,
			Title:       "Engineering Principles",
			Status:      domain.StatusInProgress,
		})
		if err != nil {
			t.Fatalf("unexpected error upserting course: %v", err)
		}
		if course.ID == 0 {
			t.Fatal("expected repository to assign an id")
		}

		career, err = repo.Upsert(ctx, domain.PathwayNode{
			InterestID:  interestID,
			PathwayType: domain.PathwayCareer,
			Title:       "Robotics Engineer",
			Status:      domain.StatusRecommended,
			AdditionalInfo: &domain.AdditionalInfo{
				RequiredSteps: []domain.RequiredStep{{ID: course.ID, Name: "Engineering Principles", Status: "in-progress"}},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error upserting career: %v", err)
		}
		if career.ID == course.ID {
			t.Errorf("ids must be unique, both got %d", career.ID)
		}
	})

	t.Run("Get_Success", func(t *testing.T) {
		got, err := repo.Get(ctx, career.ID)
		if err != nil {
			t.Fatalf("unexpected error getting node %d: %v", career.ID, err)
		}
		if got.Title != career.Title || got.PathwayType != domain.PathwayCareer {
			t.Errorf("node mismatch: got %+v, want %+v", got, career)
		}
		if len(got.RequiredSteps()) != 1 {
			t.Errorf("required steps not preserved: %+v", got.AdditionalInfo)
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, -404)
		if !errors.Is(err, domain.ErrNodeNotFound) {
			t.Errorf("expected ErrNodeNotFound, got %v", err)
		}
	})

	t.Run("List_Partitioned", func(t *testing.T) {
		set, err := repo.List(ctx, interestID)
		if err != nil {
			t.Fatalf("unexpected error listing nodes: %v", err)
		}
		if len(set.Courses) != 1 || len(set.Careers) != 1 {
			t.Errorf("expected 1 course and 1 career, got %+v", set)
		}
	})

	t.Run("List_ReturnsSnapshot", func(t *testing.T) {
		set, err := repo.List(ctx, interestID)
		if err != nil {
			t.Fatal(err)
		}
		set.Careers[0].Title = "mutated"
		set.Careers[0].AdditionalInfo.RequiredSteps[0].Name = "mutated"

		again, err := repo.Get(ctx, career.ID)
		if err != nil {
			t.Fatal(err)
		}
		if again.Title == "mutated" || again.RequiredSteps()[0].Name == "mutated" {
			t.Error("List leaked a reference into repository state")
		}
	})

	t.Run("Upsert_Replaces", func(t *testing.T) {
		career.Status = domain.StatusEligible
		if _, err := repo.Upsert(ctx, career); err != nil {
			t.Fatalf("unexpected error replacing node: %v", err)
		}
		got, err := repo.Get(ctx, career.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != domain.StatusEligible {
			t.Errorf("expected replaced status, got %q", got.Status)
		}
	})
}
