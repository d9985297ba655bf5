package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minhtde/lecture-insight/internal/report"
	"github.com/minhtde/lecture-insight/internal/segmenter"
	"github.com/minhtde/lecture-insight/internal/transcript"
)

// Process orchestrates the pipeline for one transcript file:
// parse -> segment -> evaluate -> aggregate -> assemble -> write.
func (p *implProcessor) Process(ctx context.Context, transcriptPath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting transcript analysis: %s", transcriptPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Segment the transcript
	segments, err := p.loadSegments(ctx, transcriptPath)
	if err != nil {
		return fmt.Errorf("segment transcript: %w", err)
	}
	p.logger.Info(ctx, "Transcript split into %d segments", len(segments))

	// Step 2: Evaluate all segments (bounded concurrency, ordered results)
	evals, degraded, err := p.evaluateAll(ctx, segments)
	if err != nil {
		return fmt.Errorf("evaluate segments: %w", err)
	}

	// Step 3: Aggregate and seal the report
	result := p.aggregator.Aggregate(ctx, evals)
	rep := report.Assemble(result, evals, p.cfg.Gemini.Model, degraded)

	// Step 4: Write outputs
	if err := p.writeOutputs(ctx, transcriptPath, rep); err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	// Step 5: Move the source transcript to the archive folder
	if err := p.archive(ctx, transcriptPath); err != nil {
		p.logger.Warn(ctx, "Failed to archive transcript: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Analysis completed: overall score %.1f/5 over %d segments", rep.OverallScore, rep.Metadata.SegmentCount)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

// loadSegments reads the file and picks the segmentation mode: cue-based
// for subtitle files, content-only fallback for plain text.
func (p *implProcessor) loadSegments(ctx context.Context, path string) ([]segmenter.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt", ".srt":
		entries, err := transcript.Parse(string(data))
		if err != nil {
			return nil, err
		}
		return p.segmenter.Segment(ctx, entries), nil
	default:
		p.logger.Info(ctx, "No cue timestamps expected in %s; using content-only segmentation", filepath.Base(path))
		return p.segmenter.SegmentText(ctx, string(data)), nil
	}
}

func (p *implProcessor) writeOutputs(ctx context.Context, transcriptPath string, rep *report.Report) error {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))
	markdown := report.FormatMarkdown(rep)

	mdPath := filepath.Join(p.cfg.Paths.Output, base+".md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}

	jsonData, err := report.ToJSON(rep)
	if err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	jsonPath := filepath.Join(p.cfg.Paths.Output, base+".json")
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}

	docxPath := filepath.Join(p.cfg.Paths.Output, base+".docx")
	if err := report.WriteDocx("Lecture Feedback: "+base, markdown, docxPath); err != nil {
		// DOCX is a convenience rendering; the md/json reports already exist
		p.logger.Warn(ctx, "Failed to write DOCX report: %v", err)
	}

	p.logger.Info(ctx, "Reports written: %s, %s", mdPath, jsonPath)
	return nil
}

// archive moves a processed transcript out of the input folder so it is
// not picked up again.
func (p *implProcessor) archive(ctx context.Context, transcriptPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(transcriptPath))
	p.logger.Info(ctx, "Archiving transcript: %s -> %s", transcriptPath, destPath)

	if err := os.Rename(transcriptPath, destPath); err != nil {
		return fmt.Errorf("move to archive: %w", err)
	}
	return nil
}
