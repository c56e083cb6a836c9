package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aviation-erp-api/internal/database"
	"github.com/noah-isme/aviation-erp-api/internal/models"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func tempDatabase(t *testing.T) string {
	t.Helper()
	t.Setenv("ERP_DATABASE_URL", "")
	return "sqlite://" + filepath.Join(t.TempDir(), "erp.db")
}

func TestMigrateCreatesSchema(t *testing.T) {
	url := tempDatabase(t)

	out, err := runCommand(t, "migrate", "--database", url)
	require.NoError(t, err)
	require.Contains(t, out, "Schema is up to date")

	db, err := database.Connect(url)
	require.NoError(t, err)
	require.True(t, db.Migrator().HasTable(&models.Student{}))
	require.True(t, db.Migrator().HasTable(&models.ActivityLog{}))
}

func TestBootstrapPrintsNewCredentialsOnce(t *testing.T) {
	url := tempDatabase(t)
	_, err := runCommand(t, "migrate", "--database", url)
	require.NoError(t, err)

	db, err := database.Connect(url)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Student{StudentID: "AAI101", StudentName: "Ravi", Course: "Cabin Crew"}).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	out, err := runCommand(t, "bootstrap", "--database", url)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	require.True(t, strings.HasPrefix(lines[0], "AAI101\t"))

	out, err = runCommand(t, "bootstrap", "--database", url)
	require.NoError(t, err)
	require.Contains(t, out, "No new credentials")
}

func TestUndoRejectsBadInput(t *testing.T) {
	url := tempDatabase(t)

	_, err := runCommand(t, "undo", "abc", "--database", url)
	require.ErrorContains(t, err, "invalid activity id")

	_, err = runCommand(t, "undo", "42", "--database", url)
	require.ErrorContains(t, err, "Activity not found")
}
