package service

import (
	"context"
	"strings"
	"testing"

	"useradmin/internal/entity"
)

func TestRoleCreateAndGet(t *testing.T) {
	repo := newStubRepo()
	svc := NewRoleService(repo)
	ctx := context.Background()

	role, err := svc.Create(ctx, entity.RoleCreateRequest{Name: "editor", Description: "Can edit content"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if role.ID == 0 || role.Name != "editor" {
		t.Fatalf("unexpected role: %+v", role)
	}

	loaded, err := svc.GetByID(ctx, role.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if loaded.Description != "Can edit content" {
		t.Fatalf("unexpected description: %q", loaded.Description)
	}

	_, err = svc.GetByID(ctx, 999)
	if code, ok := CodeOf(err); !ok || code != CodeRoleNotFound {
		t.Fatalf("expected ROLE_NOT_FOUND, got %v", err)
	}
}

func TestRoleNameUniquenessIsCaseInsensitive(t *testing.T) {
	repo := newStubRepo()
	svc := NewRoleService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, entity.RoleCreateRequest{Name: "admin"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := svc.Create(ctx, entity.RoleCreateRequest{Name: "Admin"})
	code, ok := CodeOf(err)
	if !ok || code != CodeRoleNameTaken {
		t.Fatalf("expected ROLE_NAME_TAKEN for case-insensitive collision, got %v", err)
	}
}

func TestRoleUpdateNameCollision(t *testing.T) {
	repo := newStubRepo()
	svc := NewRoleService(repo)
	ctx := context.Background()

	editor, _ := svc.Create(ctx, entity.RoleCreateRequest{Name: "editor"})
	viewer, _ := svc.Create(ctx, entity.RoleCreateRequest{Name: "viewer"})

	taken := "Editor"
	_, err := svc.Update(ctx, viewer.ID, entity.RoleUpdateRequest{Name: &taken})
	if code, ok := CodeOf(err); !ok || code != CodeRoleNameTaken {
		t.Fatalf("expected ROLE_NAME_TAKEN, got %v", err)
	}

	// Renaming a role to (a different casing of) its own name is allowed.
	own := "Editor"
	updated, err := svc.Update(ctx, editor.ID, entity.RoleUpdateRequest{Name: &own})
	if err != nil {
		t.Fatalf("self-rename failed: %v", err)
	}
	if updated.Name != "Editor" {
		t.Fatalf("unexpected name: %q", updated.Name)
	}
}

func TestRoleCreateStorageConstraintMapsToNameTaken(t *testing.T) {
	// The uniqueness pre-check misses but the insert hits the unique index,
	// as when a concurrent writer commits the same name in between.
	repo := &racingRepo{stubRepo: newStubRepo(), raceRoleName: "editor"}
	svc := NewRoleService(repo)

	_, err := svc.Create(context.Background(), entity.RoleCreateRequest{Name: "editor"})
	if code, ok := CodeOf(err); !ok || code != CodeRoleNameTaken {
		t.Fatalf("expected ROLE_NAME_TAKEN from constraint violation, got %v", err)
	}
}

func TestRoleUpdateStorageConstraintMapsToNameTaken(t *testing.T) {
	stub := newStubRepo()
	viewer := stub.mustAddRole("viewer", "")

	repo := &racingRepo{stubRepo: stub, raceRoleName: "editor"}
	svc := NewRoleService(repo)

	raced := "editor"
	_, err := svc.Update(context.Background(), viewer.ID, entity.RoleUpdateRequest{Name: &raced})
	if code, ok := CodeOf(err); !ok || code != CodeRoleNameTaken {
		t.Fatalf("expected ROLE_NAME_TAKEN from constraint violation, got %v", err)
	}
}

func TestRoleUpdateNotFound(t *testing.T) {
	repo := newStubRepo()
	svc := NewRoleService(repo)

	description := "whatever"
	_, err := svc.Update(context.Background(), 42, entity.RoleUpdateRequest{Description: &description})
	if code, ok := CodeOf(err); !ok || code != CodeRoleNotFound {
		t.Fatalf("expected ROLE_NOT_FOUND, got %v", err)
	}
}

func TestRoleRemoveGuardedWhileInUse(t *testing.T) {
	repo := newStubRepo()
	svc := NewRoleService(repo)
	ctx := context.Background()

	editor, _ := svc.Create(ctx, entity.RoleCreateRequest{Name: "editor"})
	fallback, _ := svc.Create(ctx, entity.RoleCreateRequest{Name: "viewer"})

	user := &entity.DbUser{Name: "Ana", Email: "ana@x.com", PasswordHash: "hash", RoleID: editor.ID}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	_, err := svc.Remove(ctx, editor.ID)
	code, ok := CodeOf(err)
	if !ok || code != CodeRoleInUse {
		t.Fatalf("expected ROLE_IN_USE, got %v", err)
	}
	if !strings.Contains(err.Error(), "1") {
		t.Fatalf("expected user count in message, got %q", err.Error())
	}
	if _, err := svc.GetByID(ctx, editor.ID); err != nil {
		t.Fatalf("role must still exist after blocked delete: %v", err)
	}

	// Reassign the user, then deletion succeeds and returns the record.
	if _, err := repo.UpdateUser(ctx, user.ID, entity.UserUpdates{RoleID: &fallback.ID}); err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	removed, err := svc.Remove(ctx, editor.ID)
	if err != nil {
		t.Fatalf("remove after reassign failed: %v", err)
	}
	if removed.Name != "editor" {
		t.Fatalf("expected deleted record, got %+v", removed)
	}
	if _, err := svc.GetByID(ctx, editor.ID); err == nil {
		t.Fatal("role should be gone after delete")
	}
}

func TestRoleListOrdersByName(t *testing.T) {
	repo := newStubRepo()
	svc := NewRoleService(repo)
	ctx := context.Background()

	for _, name := range []string{"viewer", "admin", "editor"} {
		if _, err := svc.Create(ctx, entity.RoleCreateRequest{Name: name}); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	roles, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	got := make([]string, 0, len(roles))
	for _, role := range roles {
		got = append(got, role.Name)
	}
	expected := []string{"admin", "editor", "viewer"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected order %v, got %v", expected, got)
		}
	}
}

// nilRoleListRepo mimics a driver handing back a nil slice for zero rows.
type nilRoleListRepo struct {
	*stubRepo
}

func (nilRoleListRepo) ListRoles(context.Context) ([]entity.DbRole, error) {
	return nil, nil
}

func TestRoleListEmptyIsNotNil(t *testing.T) {
	svc := NewRoleService(nilRoleListRepo{newStubRepo()})

	roles, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if roles == nil {
		t.Fatal("expected an empty slice, got nil")
	}
	if len(roles) != 0 {
		t.Fatalf("expected no roles, got %d", len(roles))
	}
}
