package checks

import (
	"context"
	"errors"
	"testing"

	"github.com/bootlin/elixir/store"
)

func TestFileChecker(t *testing.T) {
	if err := FileChecker("/tmp").Check(context.Background()); err == nil {
		t.Errorf("/tmp was expected as exists")
	}

	if err := FileChecker("NoSuchFileFromMoon").Check(context.Background()); err != nil {
		t.Errorf("NoSuchFileFromMoon was expected as not exists, error:%v", err)
	}
}

type fakeCollaborator struct {
	err error
}

func (f *fakeCollaborator) Script(ctx context.Context, args ...string) ([]byte, error) {
	return nil, f.err
}

func (f *fakeCollaborator) ScriptLines(ctx context.Context, args ...string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{"v6.1"}, nil
}

func TestCollaboratorChecker(t *testing.T) {
	if err := CollaboratorChecker(&fakeCollaborator{}).Check(context.Background()); err != nil {
		t.Errorf("expected healthy collaborator, got %v", err)
	}

	unhealthy := CollaboratorChecker(&fakeCollaborator{err: errors.New("exec: not found")})
	if err := unhealthy.Check(context.Background()); err == nil {
		t.Errorf("expected unreachable collaborator to fail the check")
	}
}

type fakeStore struct {
	store.Store
	existsErr error
}

func (f *fakeStore) Exists(ctx context.Context, key []byte) (bool, error) {
	return false, f.existsErr
}

func TestStoreChecker(t *testing.T) {
	db := &store.DB{Versions: &fakeStore{}}
	if err := StoreChecker(db).Check(context.Background()); err != nil {
		t.Errorf("expected healthy store, got %v", err)
	}

	db = &store.DB{Versions: &fakeStore{existsErr: errors.New("closed")}}
	if err := StoreChecker(db).Check(context.Background()); err == nil {
		t.Errorf("expected closed store to fail the check")
	}
}
