package csvexport

import (
	"bytes"
	"testing"
)

func TestWriteQuotesEveryField(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []string{"name", "total"}, [][]string{
		{"Ploy Srisuk", "120.50"},
		{`Sam "The Man", Jr`, "9"},
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "\"name\",\"total\"\n" +
		"\"Ploy Srisuk\",\"120.50\"\n" +
		"\"Sam \"\"The Man\"\", Jr\",\"9\"\n"
	if got := buf.String(); got != want {
		t.Errorf("csv =\n%s\nwant\n%s", got, want)
	}
}

func TestWritePadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []string{"a", "b", "c"}, [][]string{{"1"}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "\"a\",\"b\",\"c\"\n\"1\",\"\",\"\"\n"
	if got := buf.String(); got != want {
		t.Errorf("csv = %q, want %q", got, want)
	}
}

func TestWriteKeepsUTF8(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []string{"ชื่อ"}, [][]string{{"ร้านอาหาร"}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "\"ชื่อ\"\n\"ร้านอาหาร\"\n" {
		t.Errorf("csv = %q", got)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("clients", "20260301"); got != "clients-20260301.csv" {
		t.Errorf("Filename = %q", got)
	}
}
