package db

import (
	"strings"
	"testing"
)

func TestSupabaseConnectionString_FromProjectURL(t *testing.T) {
	client := NewSupabaseClient(SupabaseConfig{
		ProjectURL: "https://abcdefghij.supabase.co",
		Password:   "s3cret/pass",
	})

	connStr, err := client.connectionString()
	if err != nil {
		t.Fatalf("Failed to derive connection string: %v", err)
	}

	if !strings.Contains(connStr, "@db.abcdefghij.supabase.co:5432/postgres") {
		t.Errorf("Expected project-ref database host, got %q", connStr)
	}
	if strings.Contains(connStr, "s3cret/pass") {
		t.Errorf("Expected password to be URL-escaped, got %q", connStr)
	}
	if !strings.Contains(connStr, "sslmode=require") {
		t.Errorf("Expected sslmode=require, got %q", connStr)
	}
}

func TestSupabaseConnectionString_ExplicitWins(t *testing.T) {
	client := NewSupabaseClient(SupabaseConfig{
		ConnectionString: "postgres://postgres:pw@db.example.supabase.co:5432/postgres",
		ProjectURL:       "https://ignored.supabase.co",
		Password:         "ignored",
	})

	connStr, err := client.connectionString()
	if err != nil {
		t.Fatalf("Failed to resolve connection string: %v", err)
	}
	if connStr != "postgres://postgres:pw@db.example.supabase.co:5432/postgres" {
		t.Errorf("Expected explicit connection string to win, got %q", connStr)
	}
}

func TestSupabaseConnectionString_MissingConfig(t *testing.T) {
	client := NewSupabaseClient(SupabaseConfig{ProjectURL: "https://abc.supabase.co"})
	if _, err := client.connectionString(); err == nil {
		t.Error("Expected error when password is missing")
	}

	client = NewSupabaseClient(SupabaseConfig{Password: "pw"})
	if _, err := client.connectionString(); err == nil {
		t.Error("Expected error when project URL is missing")
	}
}

func TestSupabaseConnectionString_BadProjectHost(t *testing.T) {
	client := NewSupabaseClient(SupabaseConfig{
		ProjectURL: "https://localhost",
		Password:   "pw",
	})
	if _, err := client.connectionString(); err == nil {
		t.Error("Expected error for host without a project ref")
	}
}

func TestAppendConnParam(t *testing.T) {
	got := appendConnParam("postgres://h/db", "default_query_exec_mode", "simple_protocol")
	if got != "postgres://h/db?default_query_exec_mode=simple_protocol" {
		t.Errorf("Expected first param with '?', got %q", got)
	}

	got = appendConnParam("postgres://h/db?sslmode=require", "default_query_exec_mode", "simple_protocol")
	if got != "postgres://h/db?sslmode=require&default_query_exec_mode=simple_protocol" {
		t.Errorf("Expected appended param with '&', got %q", got)
	}

	withParam := "postgres://h/db?default_query_exec_mode=exec"
	if got := appendConnParam(withParam, "default_query_exec_mode", "simple_protocol"); got != withParam {
		t.Errorf("Expected existing param to be left alone, got %q", got)
	}
}
