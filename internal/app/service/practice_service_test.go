package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
)

func practiceFixture() (*PracticeService, *fakePracticeStore) {
	problems := newFakeProblemRepo(
		&model.Problem{ID: "m1", Subject: model.SubjectMath, CorrectAnswer: "2;3", Points: 10},
		&model.Problem{ID: "m2", Subject: model.SubjectMath, CorrectAnswer: "30", Points: 20},
		&model.Problem{ID: "i1", Subject: model.SubjectInformatics, CorrectAnswer: "O(log n)", Points: 10},
	)
	store := newFakePracticeStore()
	return NewPracticeService(problems, store), store
}

func TestStartPracticeValidatesSubject(t *testing.T) {
	svc, _ := practiceFixture()

	if _, err := svc.Start(context.Background(), nil, StartPracticeRequest{Subject: "chemistry"}); !errors.Is(err, common.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown subject, got %v", err)
	}
}

func TestStartPractice(t *testing.T) {
	svc, store := practiceFixture()

	resp, err := svc.Start(context.Background(), nil, StartPracticeRequest{Subject: model.SubjectMath, Minutes: 10})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if len(resp.Problems) != 2 {
		t.Errorf("expected the 2 math problems, got %d", len(resp.Problems))
	}
	until := time.Until(resp.Deadline)
	if until < 9*time.Minute || until > 10*time.Minute {
		t.Errorf("deadline should be ~10 minutes away, got %v", until)
	}

	session, err := store.Find(context.Background(), resp.SessionID)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if session.UserID != nil {
		t.Errorf("anonymous practice must not carry a user id, got %v", session.UserID)
	}
	if len(session.ProblemIDs) != 2 {
		t.Errorf("stored session should list the problems, got %v", session.ProblemIDs)
	}
}

func TestStartPracticeNoProblems(t *testing.T) {
	svc := NewPracticeService(newFakeProblemRepo(), newFakePracticeStore())

	if _, err := svc.Start(context.Background(), nil, StartPracticeRequest{Subject: model.SubjectMath}); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound when no problems match, got %v", err)
	}
}

func TestPracticeAnswerFlow(t *testing.T) {
	svc, _ := practiceFixture()
	ctx := context.Background()

	started, err := svc.Start(ctx, nil, StartPracticeRequest{Subject: model.SubjectMath})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	wrong, err := svc.Answer(ctx, started.SessionID, PracticeAnswerRequest{ProblemID: "m1", Answer: "7"})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if wrong.Correct {
		t.Fatal("expected incorrect result")
	}
	if wrong.CorrectAnswer == nil || *wrong.CorrectAnswer != "2;3" {
		t.Errorf("wrong practice answer should reveal the stored answer, got %v", wrong.CorrectAnswer)
	}
	if wrong.Remaining != 2 {
		t.Errorf("unsolved problems stay remaining, got %d", wrong.Remaining)
	}

	// Retrying after a wrong answer is allowed.
	right, err := svc.Answer(ctx, started.SessionID, PracticeAnswerRequest{ProblemID: "m1", Answer: "3, 2"})
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if !right.Correct || right.Remaining != 1 {
		t.Errorf("expected correct with 1 remaining, got %+v", right)
	}

	// Re-answering a solved problem is rejected.
	if _, err := svc.Answer(ctx, started.SessionID, PracticeAnswerRequest{ProblemID: "m1", Answer: "2;3"}); !errors.Is(err, common.ErrConflict) {
		t.Errorf("expected ErrConflict for a solved problem, got %v", err)
	}

	// A problem outside the session is rejected.
	if _, err := svc.Answer(ctx, started.SessionID, PracticeAnswerRequest{ProblemID: "i1", Answer: "x"}); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for foreign problem, got %v", err)
	}
}

func TestPracticeAnswerAfterDeadline(t *testing.T) {
	svc, store := practiceFixture()
	ctx := context.Background()

	started, err := svc.Start(ctx, nil, StartPracticeRequest{Subject: model.SubjectMath})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	session, err := store.Find(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	session.Deadline = time.Now().Add(-time.Minute)
	if err := store.Save(ctx, session, time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := svc.Answer(ctx, started.SessionID, PracticeAnswerRequest{ProblemID: "m1", Answer: "2;3"}); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("expected ErrForbidden after the deadline, got %v", err)
	}
}

func TestPracticeFinish(t *testing.T) {
	svc, _ := practiceFixture()
	ctx := context.Background()

	started, err := svc.Start(ctx, nil, StartPracticeRequest{Subject: model.SubjectMath})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := svc.Answer(ctx, started.SessionID, PracticeAnswerRequest{ProblemID: "m1", Answer: "2, 3"}); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if _, err := svc.Answer(ctx, started.SessionID, PracticeAnswerRequest{ProblemID: "m2", Answer: "29"}); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}

	summary, err := svc.Finish(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if summary.Total != 2 || summary.Attempted != 2 || summary.Solved != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.TimedOut {
		t.Error("finishing before the deadline is not a timeout")
	}

	// Finish is idempotent: the recorded finish time sticks.
	again, err := svc.Finish(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("second Finish failed: %v", err)
	}
	if again.ElapsedSeconds != summary.ElapsedSeconds {
		t.Errorf("elapsed changed between finishes: %d vs %d", again.ElapsedSeconds, summary.ElapsedSeconds)
	}
}

func TestPracticeUnknownSession(t *testing.T) {
	svc, _ := practiceFixture()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Finish(context.Background(), "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Finish: expected ErrNotFound, got %v", err)
	}
}
