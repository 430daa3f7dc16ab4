package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runOK(t *testing.T, args ...string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("** primconv %s exited with %d:\n%s", strings.Join(args, " "), code, stderr.String())
	}
	return stdout.String()
}

func runFail(t *testing.T, wantCode int, args ...string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if code := run(args, &stdout, &stderr); code != wantCode {
		t.Fatalf("** primconv %s exited with %d, wanted %d:\n%s", strings.Join(args, " "), code, wantCode, stderr.String())
	}
	return stderr.String()
}

func eq[T comparable](t testing.TB, a, e T) {
	if a != e {
		t.Helper()
		t.Fatalf("** got %v, wanted %v", a, e)
	}
}

func TestParseCommand(t *testing.T) {
	eq(t, runOK(t, "parse", "int8", "97"), "int8:97\n")
	eq(t, runOK(t, "parse", "unsigned short", "1234"), "uint16:1234\n")
	eq(t, runOK(t, "parse", "float", "3.14"), "float32:3.14\n")
	eq(t, runOK(t, "parse", "-wrap", "char", "999999999999"), "int8:-1\n")
	eq(t, runOK(t, "parse", "-prefixes", "uint8", "0xff"), "uint8:255\n")

	stderr := runFail(t, 1, "parse", "int8", "999999999999")
	if !strings.Contains(stderr, "value out of range") {
		t.Fatalf("** stderr = %q, wanted out of range", stderr)
	}
	runFail(t, 1, "parse", "int9", "1")
	runFail(t, 2, "parse", "int8")
}

func TestFormatCommand(t *testing.T) {
	eq(t, runOK(t, "format", "float32", "3.14"), "3.14\n")
	eq(t, runOK(t, "format", "uint32", "-5"), "4294967291\n")
	eq(t, runOK(t, "format", "-prec", "4", "double", "2.5"), "2.5000\n")
	eq(t, runOK(t, "format", "int8", "0x1ff"), "-1\n")
	eq(t, runOK(t, "format", "uint64", "18446744073709551615"), "18446744073709551615\n")
	eq(t, runOK(t, "format", "-max", "4", "int32", "123456"), "123 (truncated, 6 needed)\n")
	runFail(t, 1, "format", "int8", "abc")
}

func TestKindsCommand(t *testing.T) {
	out := runOK(t, "kinds")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	eq(t, len(lines), 12)
	if !strings.HasPrefix(lines[0], "KIND") {
		t.Fatalf("** header = %q", lines[0])
	}
	if f := strings.Fields(lines[len(lines)-1]); f[0] != "extended" || f[1] != "long" || f[3] != "16" {
		t.Fatalf("** last line = %q", lines[len(lines)-1])
	}
}

func TestUsage(t *testing.T) {
	runFail(t, 2)
	runFail(t, 2, "frobnicate")
	runFail(t, 2, "store")
}

const sampleBatch = `
precision: 3
requests:
  - {op: parse, kind: int8, text: "97"}
  - {op: parse, kind: uint16, text: "1234"}
  - {op: parse, kind: int8, text: "999999999999"}
  - {op: format, kind: float32, text: "3.14"}
  - {op: format, kind: uint32, text: "-5"}
  - {op: format, kind: int32, text: "123456", max: 4}
  - {op: frob, kind: int8, text: "1"}
`

func TestProcessBatch(t *testing.T) {
	var out bytes.Buffer
	failed, err := processBatch([]byte(sampleBatch), &out, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	eq(t, failed, 2)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	eq(t, len(lines), 7)
	eq(t, lines[0], "0\tparse\tint8\t\"97\"\tint8:97")
	eq(t, lines[1], "1\tparse\tuint16\t\"1234\"\tuint16:1234")
	if !strings.HasPrefix(lines[2], "2\tparse\tint8\t\"999999999999\"\terror: ") {
		t.Fatalf("** line 2 = %q", lines[2])
	}
	eq(t, lines[3], "3\tformat\tfloat32\t\"3.14\"\t3.140")
	eq(t, lines[4], "4\tformat\tuint32\t\"-5\"\t4294967291")
	eq(t, lines[5], "5\tformat\tint32\t\"123456\"\t123 (truncated, 6 needed)")
	if !strings.Contains(lines[6], "unknown op") {
		t.Fatalf("** line 6 = %q", lines[6])
	}
}

func TestProcessBatchWrap(t *testing.T) {
	var out bytes.Buffer
	doc := "narrowing: wrap\nrequests:\n  - {op: parse, kind: uint8, text: \"300\"}\n"
	failed, err := processBatch([]byte(doc), &out, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	eq(t, failed, 0)
	eq(t, out.String(), "0\tparse\tuint8\t\"300\"\tuint8:44\n")

	_, err = processBatch([]byte("requests:\n  - {op: parse, kind: int9}\n"), &out, slog.Default())
	if err == nil {
		t.Fatalf("** expected error for bad kind")
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.yaml")
	if err := os.WriteFile(path, []byte("requests:\n  - {op: parse, kind: int8, text: \"97\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	eq(t, runOK(t, "batch", path), "0\tparse\tint8\t\"97\"\tint8:97\n")

	path = filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte(sampleBatch), 0o644); err != nil {
		t.Fatal(err)
	}
	runFail(t, 1, "batch", path)
}

func TestStoreCommand(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "values.db")

	eq(t, runOK(t, "store", "-db", db, "put", "answer", "char", "42"), "answer = 42\n")
	eq(t, runOK(t, "store", "-db", db, "put", "pi", "float", "3.14"), "pi = 3.14\n")
	eq(t, runOK(t, "store", "-db", db, "get", "answer"), "int8:42\n")
	eq(t, runOK(t, "store", "-db", db, "list"), "answer\tint8\t42\npi\tfloat32\t3.14\n")

	dump := filepath.Join(dir, "values.msgpack")
	runOK(t, "store", "-db", db, "export", dump)
	runOK(t, "store", "-db", db, "del", "answer")
	runFail(t, 1, "store", "-db", db, "get", "answer")
	runFail(t, 1, "store", "-db", db, "del", "answer")
	eq(t, runOK(t, "store", "-db", db, "import", dump), "imported 2 values\n")
	eq(t, runOK(t, "store", "-db", db, "get", "answer"), "int8:42\n")

	runFail(t, 1, "store", "-db", db, "put", "tiny", "int8", "128")
	runFail(t, 2, "store", "-db", db, "get")
	runFail(t, 2, "store", "-db", db, "frob")
}
