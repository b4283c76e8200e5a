package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"style-finder/internal/domain"
	"style-finder/internal/service"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	id := 1
	for g := 1; g <= 4; g++ {
		sheet := domain.Group(g).String()
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		if err := f.SetSheetRow(sheet, "A1", &[]any{"Q No", "Question"}); err != nil {
			t.Fatalf("header: %v", err)
		}
		if err := f.SetSheetRow(sheet, "A2", &[]any{id, "statement"}); err != nil {
			t.Fatalf("row: %v", err)
		}
		id++
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("delete sheet: %v", err)
	}
	path := filepath.Join(t.TempDir(), "Book1.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func runQuestions(t *testing.T, stdin string) (string, error) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	t.Setenv("ACCESS_SECRET", "")
	t.Setenv("ACCESS_SECRET_HASH", string(hash))
	t.Setenv("CATALOG_DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"questions", "--catalog", writeWorkbook(t), "--output", t.TempDir()})
	err = rootCmd.Execute()
	return out.String(), err
}

func TestQuestionsCommand_RequiresSecret(t *testing.T) {
	out, err := runQuestions(t, "guess\n")
	if !errors.Is(err, service.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if strings.Contains(out, "statement") {
		t.Fatalf("expected no questions before authorization, got %q", out)
	}
}

func TestQuestionsCommand_PrintsCatalog(t *testing.T) {
	out, err := runQuestions(t, "open-sesame\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "PART 1") || !strings.Contains(out, "statement") {
		t.Fatalf("expected the catalog, got %q", out)
	}
}
