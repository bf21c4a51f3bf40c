package scrape

import (
	"fmt"
	"io"
	"log"
	"testing"

	"carnatic-archive/pkg/catalog"
)

type stubSource struct {
	entries []catalog.Entry
	err     error
}

func (s *stubSource) Fetch(string) ([]catalog.Entry, error) {
	return s.entries, s.err
}

type stubPages struct {
	pages map[string]string
}

func (p *stubPages) FetchPage(entry catalog.Entry) (string, error) {
	html, ok := p.pages[entry.Name]
	if !ok {
		return "", fmt.Errorf("page not found for %s", entry.Name)
	}
	return html, nil
}

const abheriPage = `<html><body>
<div id="PAGE_VIDEOS">
	<table><tr><td>Melakartha</td> <td>22 Kharaharapriya</td></tr>
	<tr><td>Arohana</td> <td>S G2 M1 P N2 S</td></tr>
	<tr><td>Avarohana</td> <td>S N2 D2 P M1 G2 R2 S</td></tr></table>
	<div class="list-group"><ol>
		<li><a href="https://www.youtube.com/watch?v=sex9LtEWjvg&amp;t=1195s&amp;end=1215">Concert</a></li>
		<li><a href="https://example.com/not-a-video">Broken</a></li>
		<li><a href="https://youtu.be/GOF1-0dWXmU">Alapana</a></li>
	</ol></div>
</div>
</body></html>`

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestServiceRun_ExtractsRecords(t *testing.T) {
	source := &stubSource{entries: []catalog.Entry{
		{Name: "Abheri", Href: "#Abheri"},
		{Name: "Kapi, Hindustani", Href: "#Kapi"},
		{Name: "Kalyani", Href: "#Kalyani"},
	}}
	pages := &stubPages{pages: map[string]string{
		"Abheri":  abheriPage,
		"Kalyani": `<html><body><p>no table here</p></body></html>`,
	}}

	service := NewService(Config{
		CatalogURL: "https://example.com/carnatic.html",
		MaxRagas:   5,
		Sources:    []catalog.Source{source},
		Pages:      pages,
		Logger:     quietLogger(),
	})

	records, err := service.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The comma name is skipped entirely.
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	abheri := records[0]
	if abheri.Raga != "Abheri" {
		t.Fatalf("Expected first record 'Abheri', got %q", abheri.Raga)
	}
	if abheri.RagaURL != "https://example.com/carnatic.html#Abheri" {
		t.Errorf("Unexpected raga URL: %q", abheri.RagaURL)
	}
	if abheri.MelakarthaNumber == nil || *abheri.MelakarthaNumber != 22 {
		t.Errorf("Expected melakartha number 22, got %v", abheri.MelakarthaNumber)
	}
	if abheri.Arohana == nil || *abheri.Arohana != "S G2 M1 P N2 S" {
		t.Errorf("Unexpected arohana: %v", abheri.Arohana)
	}
	if abheri.RawTableData == nil {
		t.Error("Expected raw table data to be retained")
	}

	// The broken reference is dropped, leaving two parseable ones.
	if len(abheri.AudioURLs) != 2 {
		t.Fatalf("Expected 2 audio references, got %d", len(abheri.AudioURLs))
	}
	if abheri.AudioURLs[0].VideoID != "sex9LtEWjvg" {
		t.Errorf("Unexpected first video id: %q", abheri.AudioURLs[0].VideoID)
	}
	if abheri.AudioURLs[0].StartSeconds == nil || *abheri.AudioURLs[0].StartSeconds != 1195 {
		t.Errorf("Unexpected start offset: %v", abheri.AudioURLs[0].StartSeconds)
	}
	if abheri.AudioURLs[1].VideoID != "GOF1-0dWXmU" {
		t.Errorf("Unexpected second video id: %q", abheri.AudioURLs[1].VideoID)
	}
}

func TestServiceRun_MaxRagasCap(t *testing.T) {
	source := &stubSource{entries: []catalog.Entry{
		{Name: "Abheri"}, {Name: "Kalyani"}, {Name: "Todi"},
	}}
	pages := &stubPages{pages: map[string]string{}}

	service := NewService(Config{
		CatalogURL: "https://example.com/carnatic.html",
		MaxRagas:   2,
		Sources:    []catalog.Source{source},
		Pages:      pages,
		Logger:     quietLogger(),
	})

	records, err := service.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected cap of 2 records, got %d", len(records))
	}
}

func TestServiceRun_PageFailureDegradesToPartialRecord(t *testing.T) {
	source := &stubSource{entries: []catalog.Entry{{Name: "Abheri"}}}
	pages := &stubPages{pages: map[string]string{}} // every fetch fails

	service := NewService(Config{
		CatalogURL: "https://example.com/carnatic.html",
		MaxRagas:   1,
		Sources:    []catalog.Source{source},
		Pages:      pages,
		Logger:     quietLogger(),
	})

	records, err := service.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 partial record, got %d", len(records))
	}

	record := records[0]
	if record.Raga != "Abheri" {
		t.Errorf("Expected raga name retained, got %q", record.Raga)
	}
	if record.MelakarthaNumber != nil || record.Arohana != nil || record.RawTableData != nil {
		t.Error("Expected absent metadata fields on partial record")
	}
	if len(record.AudioURLs) != 0 {
		t.Errorf("Expected no audio references, got %d", len(record.AudioURLs))
	}
}

func TestServiceRun_CatalogFailureIsFatal(t *testing.T) {
	source := &stubSource{err: fmt.Errorf("connection refused")}

	service := NewService(Config{
		CatalogURL: "https://example.com/carnatic.html",
		MaxRagas:   1,
		Sources:    []catalog.Source{source},
		Pages:      &stubPages{},
		Logger:     quietLogger(),
	})

	records, err := service.Run()
	if err == nil {
		t.Fatal("Expected error when no source yields entries")
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestServiceRun_SourceFallback(t *testing.T) {
	failing := &stubSource{err: fmt.Errorf("feed unreachable")}
	working := &stubSource{entries: []catalog.Entry{{Name: "Abheri"}}}

	service := NewService(Config{
		CatalogURL: "https://example.com/carnatic.html",
		MaxRagas:   1,
		Sources:    []catalog.Source{failing, working},
		Pages:      &stubPages{},
		Logger:     quietLogger(),
	})

	records, err := service.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected fallback source to supply 1 record, got %d", len(records))
	}
}

func TestCatalogFragmentURL(t *testing.T) {
	got := CatalogFragmentURL("https://example.com/carnatic.html", "Sindhu Bhairavi")
	want := "https://example.com/carnatic.html#Sindhu_Bhairavi"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
