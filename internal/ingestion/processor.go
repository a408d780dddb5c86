// Package ingestion turns syllabus and past-paper documents into graph
// entities. Documents go through the LLM under a fixed-size permit pool;
// structured syllabus files are imported directly.
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/llm"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
)

const DefaultMaxConcurrent = 5

// Store is the part of the repository ingestion writes through.
type Store interface {
	ImportSyllabusFromStructuredData(ctx context.Context, email string, data domain.SyllabusData) (domain.ImportSummary, error)
	SavePYQ(ctx context.Context, email, title, subject, year, examType, description string) (string, error)
	AddQuestionToPYQ(ctx context.Context, pyqID string, q domain.NewQuestion) (string, error)
}

type Processor struct {
	llm   llm.Completer
	store Store
	log   *logger.Logger
	limit int
}

func NewProcessor(completer llm.Completer, store Store, log *logger.Logger, maxConcurrent int) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Processor{
		llm:   completer,
		store: store,
		log:   log.With("component", "IngestionProcessor"),
		limit: maxConcurrent,
	}
}

// PYQImport reports what one past paper produced.
type PYQImport struct {
	PYQID     string `json:"pyq_id"`
	Questions int    `json:"questions"`
}

type pyqDocument struct {
	Title       string        `json:"title"`
	Subject     string        `json:"subject"`
	Year        string        `json:"year"`
	ExamType    string        `json:"exam_type"`
	Description string        `json:"description"`
	Questions   []pyqQuestion `json:"questions"`
}

type pyqQuestion struct {
	Text         string `json:"text"`
	Answer       string `json:"answer"`
	QuestionType string `json:"question_type"`
	Marks        int    `json:"marks"`
}

// ProcessSyllabus asks the LLM for the structure of a syllabus document and
// imports it for email.
func (p *Processor) ProcessSyllabus(ctx context.Context, email, text string) (domain.ImportSummary, error) {
	data, err := p.extractSyllabus(ctx, text)
	if err != nil {
		return domain.ImportSummary{}, err
	}
	return p.store.ImportSyllabusFromStructuredData(ctx, email, data)
}

func (p *Processor) extractSyllabus(ctx context.Context, text string) (domain.SyllabusData, error) {
	raw, err := p.complete(ctx, syllabusPrompt, text, syllabusSchema)
	if err != nil {
		return domain.SyllabusData{}, fmt.Errorf("extract syllabus: %w", err)
	}
	var data domain.SyllabusData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return domain.SyllabusData{}, fmt.Errorf("decode syllabus: %w", err)
	}
	return data, nil
}

// ProcessPYQ extracts the questions of a past paper and stores the paper
// with its questions. Questions are written one transaction each, so a
// failure part way keeps the questions already written.
func (p *Processor) ProcessPYQ(ctx context.Context, email, text string) (PYQImport, error) {
	raw, err := p.complete(ctx, pyqPrompt, text, pyqSchema)
	if err != nil {
		return PYQImport{}, fmt.Errorf("extract pyq: %w", err)
	}
	var doc pyqDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return PYQImport{}, fmt.Errorf("decode pyq: %w", err)
	}

	id, err := p.store.SavePYQ(ctx, email, doc.Title, doc.Subject, doc.Year, doc.ExamType, doc.Description)
	if err != nil {
		return PYQImport{}, err
	}
	out := PYQImport{PYQID: id}
	for _, q := range doc.Questions {
		if _, err := p.store.AddQuestionToPYQ(ctx, id, domain.NewQuestion{
			Text:         q.Text,
			Answer:       q.Answer,
			QuestionType: strings.ToLower(strings.TrimSpace(q.QuestionType)),
			Marks:        q.Marks,
		}); err != nil {
			return out, err
		}
		out.Questions++
	}
	return out, nil
}

func (p *Processor) complete(ctx context.Context, prompt, text string, schema *gojsonschema.Schema) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document is empty")
	}
	reply, err := p.llm.Complete(ctx, prompt, text)
	if err != nil {
		return "", err
	}
	raw, err := llm.ExtractJSON(reply)
	if err != nil {
		return "", err
	}
	if err := validate(schema, raw); err != nil {
		return "", err
	}
	return raw, nil
}

// LoadSyllabusFile decodes a structured syllabus from a .yaml, .yml or .json
// file.
func LoadSyllabusFile(path string) (domain.SyllabusData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.SyllabusData{}, err
	}
	var data domain.SyllabusData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	case ".json":
		if verr := validate(syllabusSchema, string(raw)); verr != nil {
			return domain.SyllabusData{}, fmt.Errorf("%s: %w", path, verr)
		}
		err = json.Unmarshal(raw, &data)
	default:
		return domain.SyllabusData{}, fmt.Errorf("%s: not a structured syllabus file", path)
	}
	if err != nil {
		return domain.SyllabusData{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func isStructured(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// Outcome is the result of ingesting one file.
type Outcome struct {
	Path     string                `json:"path"`
	Kind     string                `json:"kind"`
	Syllabus *domain.ImportSummary `json:"syllabus,omitempty"`
	PYQ      *PYQImport            `json:"pyq,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// Report collects the outcomes of a batch, sorted by path.
type Report struct {
	Outcomes []Outcome `json:"outcomes"`
	Failed   int       `json:"failed"`
}

// ProcessAll ingests every syllabus and PYQ file for email. At most limit
// documents are in flight at once. A failing document is recorded in the
// report and does not stop the others; only cancellation of ctx aborts the
// batch.
func (p *Processor) ProcessAll(ctx context.Context, email string, syllabusFiles, pyqFiles []string) (Report, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	var (
		mu     sync.Mutex
		report Report
	)
	record := func(o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		if o.Error != "" {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, o)
	}

	for _, path := range syllabusFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := Outcome{Path: path, Kind: "syllabus"}
			summary, err := p.ingestSyllabusFile(gctx, email, path)
			if err != nil {
				o.Error = err.Error()
				p.log.Warn("syllabus ingestion failed", "path", path, "error", err)
			} else {
				o.Syllabus = &summary
				p.log.Info("syllabus ingested", "path", path, "syllabus_id", summary.SyllabusID)
			}
			record(o)
			return nil
		})
	}
	for _, path := range pyqFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := Outcome{Path: path, Kind: "pyq"}
			text, err := os.ReadFile(path)
			var res PYQImport
			if err == nil {
				res, err = p.ProcessPYQ(gctx, email, string(text))
			}
			if err != nil {
				o.Error = err.Error()
				p.log.Warn("pyq ingestion failed", "path", path, "error", err)
			} else {
				o.PYQ = &res
				p.log.Info("pyq ingested", "path", path, "pyq_id", res.PYQID, "questions", res.Questions)
			}
			record(o)
			return nil
		})
	}

	err := g.Wait()
	sort.Slice(report.Outcomes, func(i, j int) bool {
		return report.Outcomes[i].Path < report.Outcomes[j].Path
	})
	return report, err
}

func (p *Processor) ingestSyllabusFile(ctx context.Context, email, path string) (domain.ImportSummary, error) {
	if isStructured(path) {
		data, err := LoadSyllabusFile(path)
		if err != nil {
			return domain.ImportSummary{}, err
		}
		return p.store.ImportSyllabusFromStructuredData(ctx, email, data)
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return domain.ImportSummary{}, err
	}
	return p.ProcessSyllabus(ctx, email, string(text))
}

// ListDocuments returns the files directly inside dir whose extension is one
// of exts, sorted by name.
func ListDocuments(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range exts {
			if ext == want {
				out = append(out, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
