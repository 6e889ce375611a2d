package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/netways/checkinlist-export/internal/checkin"
	"github.com/netways/checkinlist-export/internal/domain"
	"github.com/netways/checkinlist-export/internal/repo"
)

// ContentTypeCSV is the MIME type of every check-in list export.
const ContentTypeCSV = "text/csv"

// ExportService renders check-in lists as pivoted CSV files.
type ExportService struct {
	events    repo.EventRepo
	lists     repo.CheckinListRepo
	questions repo.QuestionRepo
	positions repo.PositionRepo
	layout    checkin.Layout
	encoding  checkin.EncodeOptions
}

// NewExportService constructs an ExportService backed by the provided repos.
// layout is applied to the product columns of every export and encoding to
// the CSV output.
func NewExportService(
	events repo.EventRepo,
	lists repo.CheckinListRepo,
	questions repo.QuestionRepo,
	positions repo.PositionRepo,
	layout checkin.Layout,
	encoding checkin.EncodeOptions,
) *ExportService {
	return &ExportService{
		events:    events,
		lists:     lists,
		questions: questions,
		positions: positions,
		layout:    layout,
		encoding:  encoding,
	}
}

// Export builds the check-in list CSV of the event identified by eventSlug.
// Returns domain.ErrValidation for malformed options or unknown questions and
// domain.ErrNotFound when the event or the check-in list does not exist.
// Storage errors are returned wrapped and unchanged.
func (s *ExportService) Export(ctx context.Context, eventSlug string, opts domain.ExportOptions) (domain.ExportFile, error) {
	if opts.Sort == "" {
		opts.Sort = domain.SortByName
	}
	if err := validate.Struct(opts); err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: %w", validationError(err))
	}

	event, err := s.events.GetBySlug(ctx, eventSlug)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: event %q: %w", eventSlug, err)
	}

	list, err := s.lists.GetByID(ctx, event.ID, opts.ListID)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: check-in list %s: %w", opts.ListID, err)
	}

	questions, err := s.selectedQuestions(ctx, event.ID, opts.QuestionIDs)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	filter := domain.PositionFilter{
		EventID:    event.ID,
		SubeventID: list.SubeventID,
		PaidOnly:   opts.PaidOnly,
		Sort:       opts.Sort,
	}
	if !list.AllProducts {
		filter.ProductIDs = list.ProductIDs
		if filter.ProductIDs == nil {
			filter.ProductIDs = []uuid.UUID{}
		}
	}
	positions, err := s.positions.ListForExport(ctx, filter, opts.QuestionIDs)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	ds := checkin.Build(positions, questions, checkin.PaidMarker)
	s.layout.Apply(ds)
	table := checkin.Render(ds, checkin.RenderOptions{
		NameScheme: domain.LookupNameScheme(event.NameScheme),
		Columns:    opts.Columns,
		Secrets:    opts.Secrets,
	})
	payload, err := checkin.Encode(table, s.encoding)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	slog.DebugContext(ctx, "check-in list exported",
		"event", event.Slug,
		"list", list.Name,
		"positions", len(positions),
		"rows", len(table.Rows),
		"products", ds.Products.Len(),
		"questions", ds.Questions.Len(),
	)

	return domain.ExportFile{
		Filename:    event.Slug + "_checkin_net.csv",
		ContentType: ContentTypeCSV,
		Payload:     payload,
	}, nil
}

// selectedQuestions loads the questions chosen for the export in the order
// they were requested. Any requested ID that does not belong to the event
// fails the export.
func (s *ExportService) selectedQuestions(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) ([]domain.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	loaded, err := s.questions.ListByIDs(ctx, eventID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.Question, len(loaded))
	for _, q := range loaded {
		byID[q.ID] = q
	}
	questions := make([]domain.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown question %s", domain.ErrValidation, id)
		}
		questions = append(questions, q)
	}
	return questions, nil
}
