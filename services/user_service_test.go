package services

import (
	"errors"
	"testing"

	"dashboard/entity"
	"dashboard/repository"
)

func TestUserCreateAndUpdate(t *testing.T) {
	db := newTestDB(t, false)
	svc := NewUserService(db, repository.NewUserRepository(db))
	roles, err := svc.Roles()
	if err != nil {
		t.Fatal(err)
	}
	support := roles[len(roles)-1]

	u, err := svc.Create(CreateUserReq{Email: " Jane@Example.com ", Password: "secret1", FirstName: "Jane", RoleID: support.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "jane@example.com" || u.Role.Name != support.Name || u.Password == "secret1" {
		t.Errorf("user = %+v", u)
	}

	if _, err := svc.Create(CreateUserReq{Email: "jane@example.com", Password: "secret1", FirstName: "J", RoleID: support.ID}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate email: err = %v", err)
	}
	if _, err := svc.Create(CreateUserReq{Email: "x@example.com", Password: "123", FirstName: "X", RoleID: support.ID}); !errors.Is(err, ErrValidation) {
		t.Errorf("short password: err = %v", err)
	}
	if _, err := svc.Create(CreateUserReq{Email: "y@example.com", Password: "secret1", FirstName: "Y", RoleID: 999}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown role: err = %v", err)
	}

	status := entity.UserInactive
	up, err := svc.Update(u.ID, UpdateUserReq{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if up.Status != entity.UserInactive {
		t.Errorf("status = %s", up.Status)
	}
	bad := "banned"
	if _, err := svc.Update(u.ID, UpdateUserReq{Status: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad status: err = %v", err)
	}

	if err := svc.Delete(u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete twice: err = %v", err)
	}
}

func TestRoleRules(t *testing.T) {
	db := newTestDB(t, false)
	svc := NewUserService(db, repository.NewUserRepository(db))

	roles, err := svc.Roles()
	if err != nil {
		t.Fatal(err)
	}
	admin := roles[0]
	if admin.Name != "admin" || admin.UserCount != 1 {
		t.Fatalf("admin role = %+v", admin)
	}
	if err := svc.DeleteRole(admin.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("delete admin: err = %v", err)
	}
	if _, err := svc.UpdateRole(admin.ID, RoleInput{Name: "root"}); !errors.Is(err, ErrValidation) {
		t.Errorf("rename admin: err = %v", err)
	}

	r, err := svc.CreateRole(RoleInput{Name: "Auditor", Permissions: []string{"invoices:read"}})
	if err != nil {
		t.Fatalf("CreateRole: %v", err)
	}
	if r.Name != "auditor" {
		t.Errorf("name = %s", r.Name)
	}
	if _, err := svc.CreateRole(RoleInput{Name: "auditor"}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate role: err = %v", err)
	}

	if _, err := svc.Create(CreateUserReq{Email: "aud@example.com", Password: "secret1", FirstName: "A", RoleID: r.ID}); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteRole(r.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("delete role in use: err = %v", err)
	}
}

func TestDeletedNamesAreReusable(t *testing.T) {
	db := newTestDB(t, false)
	svc := NewUserService(db, repository.NewUserRepository(db))

	ops, err := svc.CreateRole(RoleInput{Name: "ops"})
	if err != nil {
		t.Fatal(err)
	}
	req := CreateUserReq{Email: "sam@example.com", Password: "secret1", FirstName: "Sam", RoleID: ops.ID}
	u, err := svc.Create(req)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(u.ID); err != nil {
		t.Fatal(err)
	}
	again, err := svc.Create(req)
	if err != nil {
		t.Fatalf("recreate deleted email: %v", err)
	}
	if again.ID == u.ID {
		t.Errorf("recreated user kept id %d", u.ID)
	}
	if err := svc.Delete(again.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteRole(ops.ID); err != nil {
		t.Fatalf("DeleteRole: %v", err)
	}
	if _, err := svc.CreateRole(RoleInput{Name: "ops"}); err != nil {
		t.Errorf("recreate deleted role: %v", err)
	}
}

func TestRenameRoleConflict(t *testing.T) {
	db := newTestDB(t, false)
	svc := NewUserService(db, repository.NewUserRepository(db))

	r, err := svc.CreateRole(RoleInput{Name: "auditor"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateRole(r.ID, RoleInput{Name: "Manager"}); !errors.Is(err, ErrConflict) {
		t.Errorf("rename onto manager: err = %v", err)
	}
	up, err := svc.UpdateRole(r.ID, RoleInput{Name: "finance", Description: "Books"})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if up.Name != "finance" || up.Description != "Books" {
		t.Errorf("renamed = %+v", up)
	}
}
