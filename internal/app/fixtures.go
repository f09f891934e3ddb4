package app

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"learnhub_client/internal/config"
	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/pkg/rbac"
)

// DefaultPassword is shared by every seeded fixture account.
const DefaultPassword = "changeme123"

// seedFixtures loads the in-memory stores with a representative set of
// accounts, quizzes and simulation scenarios.
func seedFixtures(repos *repositories, cfg *config.Config) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	guestExpiry := rbac.CalculateGuestAccessExpiry(cfg.GuestAccessDuration())
	expiredGuestExpiry := time.Now().Add(-time.Hour)

	accounts := []*repository.Account{
		{
			UserRecord: model.UserRecord{
				ID:    "admin-1",
				Email: "admin@learnhub.test",
				Role:  model.RoleAdmin,
			},
			PasswordHash: hash,
		},
		{
			UserRecord: model.UserRecord{
				ID:            "instructor-1",
				Email:         "instructor@learnhub.test",
				Role:          model.RoleInstructor,
				InstitutionID: "inst-1",
			},
			PasswordHash: hash,
		},
		{
			UserRecord: model.UserRecord{
				ID:            "partner-1",
				Email:         "partner@learnhub.test",
				Role:          model.RolePartnerInstructor,
				InstitutionID: "inst-2",
			},
			PasswordHash: hash,
		},
		{
			UserRecord: model.UserRecord{
				ID:            "student-1",
				Email:         "student@learnhub.test",
				Role:          model.RoleStudent,
				InstitutionID: "inst-1",
			},
			PasswordHash: hash,
		},
		{
			UserRecord: model.UserRecord{
				ID:                "guest-1",
				Email:             "guest@learnhub.test",
				Role:              model.RoleGuest,
				GuestAccessExpiry: &guestExpiry,
				InstitutionID:     "inst-1",
			},
			PasswordHash: hash,
		},
		{
			UserRecord: model.UserRecord{
				ID:                "guest-expired",
				Email:             "expired-guest@learnhub.test",
				Role:              model.RoleGuest,
				GuestAccessExpiry: &expiredGuestExpiry,
				InstitutionID:     "inst-1",
			},
			PasswordHash: hash,
		},
		{
			UserRecord: model.UserRecord{
				ID:     "suspended-1",
				Email:  "suspended@learnhub.test",
				Role:   model.RoleInstructor,
				Status: model.StatusSuspended,
			},
			PasswordHash: hash,
		},
	}
	for _, account := range accounts {
		if err := repos.user.Create(account); err != nil {
			return err
		}
	}

	repos.quiz.AddQuiz(&repository.StoredQuiz{
		Definition: model.QuizDefinition{
			ModuleID: "mod-networks-1",
			Title:    "Networking Basics Checkpoint",
			Questions: []model.QuizQuestion{
				{Index: 0, Prompt: "Which layer does TCP operate at?", Options: []string{"Network", "Transport", "Session", "Physical"}},
				{Index: 1, Prompt: "What does DNS resolve?", Options: []string{"MAC addresses", "Port numbers", "Hostnames", "Routes"}},
			},
			MaxScore:         2,
			TimeLimitSeconds: 60,
		},
		AnswerKey: map[int]int{0: 1, 1: 2},
	})

	repos.quiz.AddQuiz(&repository.StoredQuiz{
		Definition: model.QuizDefinition{
			ModuleID: "mod-ethics-1",
			Title:    "Professional Ethics Review",
			Questions: []model.QuizQuestion{
				{Index: 0, Prompt: "A client asks you to hide an incident. You should:", Options: []string{"Comply", "Escalate", "Ignore"}},
				{Index: 1, Prompt: "Who owns learner data?", Options: []string{"The platform", "The institution", "The learner"}},
				{Index: 2, Prompt: "Disclosure timelines are governed by:", Options: []string{"Preference", "Policy", "Mood"}},
			},
			MaxScore: 3,
		},
		AnswerKey: map[int]int{0: 1, 1: 2, 2: 1},
	})

	repos.chat.AddScenario(&model.SimulationScenario{
		ID:          "scn-helpdesk",
		Title:       "Frustrated Customer Call",
		Description: "De-escalate a support call that started badly.",
		Persona:     "Upset customer",
	})
	repos.chat.AddScenario(&model.SimulationScenario{
		ID:          "scn-interview",
		Title:       "Stakeholder Interview",
		Description: "Gather requirements from a distracted stakeholder.",
		Persona:     "Busy stakeholder",
	})

	return nil
}
