package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ritmo.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateBackup(t *testing.T) {
	dataPath := testDataFile(t, `{"habits": []}`)
	mgr := NewManager(dataPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("create backup failed: %v", err)
	}
	if filepath.Dir(backupPath) != mgr.BackupDir() {
		t.Fatalf("backup should live in %s, got %s", mgr.BackupDir(), backupPath)
	}
	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, ".json") {
		t.Fatalf("unexpected backup name: %s", name)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"habits": []}` {
		t.Fatalf("backup content differs: %s", data)
	}
}

func TestCreateBackup_MissingDataFile(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected error for missing data file")
	}
}

func TestCreateBackup_CollisionGetsUniqueName(t *testing.T) {
	dataPath := testDataFile(t, "one")
	mgr := NewManager(dataPath)

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("same-minute backups should get distinct names: %s", first)
	}
}

func TestListBackups_EmptyAndSorted(t *testing.T) {
	dataPath := testDataFile(t, "data")
	mgr := NewManager(dataPath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("missing backup dir should not error: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatal(err)
	}
	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
	if backups[0].Timestamp.Before(backups[1].Timestamp) {
		t.Fatal("backups should be listed newest first")
	}
}

func TestListBackups_IgnoresForeignFiles(t *testing.T) {
	dataPath := testDataFile(t, "data")
	mgr := NewManager(dataPath)
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.BackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("foreign files should be ignored, got %d entries", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dataPath := testDataFile(t, "original")
	mgr := NewManager(dataPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dataPath, []byte("changed"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	data, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Fatalf("restore did not bring back the backup content: %s", data)
	}

	// The pre-restore state was itself backed up.
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, b := range backups {
		content, err := os.ReadFile(b.Path)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) == "changed" {
			found = true
		}
	}
	if !found {
		t.Fatal("restore should back up the current data file first")
	}
}

func TestRestoreBackup_MissingBackup(t *testing.T) {
	mgr := NewManager(testDataFile(t, "data"))
	if err := mgr.RestoreBackup(filepath.Join(mgr.BackupDir(), "ritmo-nope.json")); err == nil {
		t.Fatal("expected error for missing backup")
	}
}

func TestRotation_KeepsAtMostMaxBackups(t *testing.T) {
	dataPath := testDataFile(t, "data")
	mgr := NewManager(dataPath)

	for i := 0; i < MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) > MaxBackups {
		t.Fatalf("rotation should cap backups at %d, got %d", MaxBackups, len(backups))
	}
}
