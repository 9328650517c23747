package services

import (
	"errors"
	"testing"
	"time"

	"dashboard/entity"
	"dashboard/repository"
	"dashboard/utils"
)

func TestAuthService(t *testing.T) {
	db := newTestDB(t, true)
	repo := repository.NewUserRepository(db)
	svc := NewAuthService(repo, "secret", time.Minute, time.Hour)

	pair, err := svc.Login(" ADMIN@test.local ", "admin1234")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.ExpiresIn != 60 || pair.User == nil || pair.User.Role.Name != "admin" {
		t.Errorf("pair = %+v", pair)
	}
	claims, err := utils.ParseToken(pair.AccessToken, utils.TokenAccess, "secret")
	if err != nil || claims.Role != "admin" {
		t.Fatalf("access claims = %+v, %v", claims, err)
	}

	if _, err := svc.Login("admin@test.local", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := svc.Login("ghost@test.local", "admin1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v", err)
	}
	// staff6 is seeded inactive
	if _, err := svc.Login("staff6@dashboard.local", "staff1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("inactive user: err = %v", err)
	}

	next, err := svc.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if next.AccessToken == "" || next.RefreshToken == pair.RefreshToken {
		t.Error("refresh should issue a new pair")
	}
	if _, err := svc.Refresh(pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("access token as refresh: err = %v", err)
	}

	if err := repo.Update(pair.User.ID, map[string]any{"status": entity.UserInactive}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Refresh(pair.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("refresh for deactivated user: err = %v", err)
	}
}
