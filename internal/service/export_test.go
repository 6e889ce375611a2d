package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netways/checkinlist-export/internal/checkin"
	"github.com/netways/checkinlist-export/internal/domain"
	"github.com/netways/checkinlist-export/internal/service"
)

// ---- helpers ---------------------------------------------------------------

var testEvent = domain.Event{ID: uuid.New(), Slug: "osdc26", Name: "OSDC", NameScheme: "full"}

func eventRepo() *mockEventRepo {
	return &mockEventRepo{
		getBySlug: func(_ context.Context, slug string) (domain.Event, error) {
			if slug != testEvent.Slug {
				return domain.Event{}, domain.ErrNotFound
			}
			return testEvent, nil
		},
	}
}

func listRepo(list domain.CheckinList) *mockCheckinListRepo {
	return &mockCheckinListRepo{
		getByID: func(_ context.Context, eventID, listID uuid.UUID) (domain.CheckinList, error) {
			if eventID != testEvent.ID || listID != list.ID {
				return domain.CheckinList{}, domain.ErrNotFound
			}
			return list, nil
		},
	}
}

func questionRepo(qs ...domain.Question) *mockQuestionRepo {
	return &mockQuestionRepo{
		listByIDs: func(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]domain.Question, error) {
			var out []domain.Question
			for _, q := range qs {
				for _, id := range ids {
					if q.ID == id {
						out = append(out, q)
					}
				}
			}
			return out, nil
		},
	}
}

func positionRepo(positions ...domain.TicketPosition) *mockPositionRepo {
	return &mockPositionRepo{
		listForExport: func(_ context.Context, _ domain.PositionFilter, _ []uuid.UUID) ([]domain.TicketPosition, error) {
			return positions, nil
		},
	}
}

func allProductsList() domain.CheckinList {
	return domain.CheckinList{ID: uuid.New(), EventID: testEvent.ID, Name: "Main", AllProducts: true}
}

func paidPosition(order, attendee, product string) domain.TicketPosition {
	return domain.TicketPosition{
		ID:           uuid.New(),
		OrderCode:    order,
		OrderStatus:  domain.StatusPaid,
		AttendeeName: attendee,
		ProductName:  product,
	}
}

func csvLines(payload []byte) []string {
	return strings.Split(strings.TrimRight(string(payload), "\r\n"), "\r\n")
}

// ---- Export ----------------------------------------------------------------

func TestExportService_Export_PivotsPositions(t *testing.T) {
	list := allProductsList()
	diet := domain.Question{ID: uuid.New(), Label: "Diet"}
	jane := paidPosition("A1", "Jane", "Ticket")
	jane.AttendeeEmail = "jane@example.com"
	addon := paidPosition("A1", "", "Addon")
	addon.AddonTo = &jane
	addon.Answers = map[uuid.UUID]string{diet.ID: "Vegetarian"}

	svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(diet), positionRepo(jane, addon), checkin.Layout{}, checkin.EncodeOptions{})

	opts := domain.DefaultExportOptions()
	opts.ListID = list.ID
	opts.QuestionIDs = []uuid.UUID{diet.ID}
	file, err := svc.Export(context.Background(), "osdc26", opts)

	require.NoError(t, err)
	assert.Equal(t, "osdc26_checkin_net.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, []string{
		`"Order code","Attendee name","E-Mail","Ticket","Addon","Diet"`,
		`"A1","Jane","jane@example.com",1,1,"Vegetarian"`,
	}, csvLines(file.Payload))
}

func TestExportService_Export_EmptyList_HeaderOnly(t *testing.T) {
	list := allProductsList()
	svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(), positionRepo(), checkin.Layout{}, checkin.EncodeOptions{})

	file, err := svc.Export(context.Background(), "osdc26", domain.ExportOptions{ListID: list.ID})

	require.NoError(t, err)
	assert.Equal(t, []string{`"Order code","Attendee name"`}, csvLines(file.Payload))
}

func TestExportService_Export_AppliesLayout(t *testing.T) {
	list := allProductsList()
	svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(), positionRepo(
		paidPosition("A1", "Jane", "Workshop"),
		paidPosition("A2", "John", "Dinner"),
	), checkin.Layout{SortProducts: true, BaselineProduct: "Ticket"}, checkin.EncodeOptions{})

	file, err := svc.Export(context.Background(), "osdc26", domain.ExportOptions{ListID: list.ID})

	require.NoError(t, err)
	assert.Equal(t, `"Order code","Attendee name","Ticket","Dinner","Workshop"`, csvLines(file.Payload)[0])
}

func TestExportService_Export_BuildsFilterFromList(t *testing.T) {
	subevent := uuid.New()
	product := uuid.New()
	list := domain.CheckinList{ID: uuid.New(), EventID: testEvent.ID, ProductIDs: []uuid.UUID{product}, SubeventID: &subevent}
	diet := uuid.New()

	var gotFilter domain.PositionFilter
	var gotQuestions []uuid.UUID
	positions := &mockPositionRepo{
		listForExport: func(_ context.Context, f domain.PositionFilter, q []uuid.UUID) ([]domain.TicketPosition, error) {
			gotFilter, gotQuestions = f, q
			return nil, nil
		},
	}
	svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(domain.Question{ID: diet, Label: "Diet"}), positions, checkin.Layout{}, checkin.EncodeOptions{})

	_, err := svc.Export(context.Background(), "osdc26", domain.ExportOptions{
		ListID: list.ID, QuestionIDs: []uuid.UUID{diet}, PaidOnly: true, Sort: domain.SortByCode,
	})

	require.NoError(t, err)
	assert.Equal(t, testEvent.ID, gotFilter.EventID)
	assert.Equal(t, []uuid.UUID{product}, gotFilter.ProductIDs)
	assert.Equal(t, &subevent, gotFilter.SubeventID)
	assert.True(t, gotFilter.PaidOnly)
	assert.Equal(t, domain.SortByCode, gotFilter.Sort)
	assert.Equal(t, []uuid.UUID{diet}, gotQuestions)
}

func TestExportService_Export_DefaultSortIsName(t *testing.T) {
	list := allProductsList()
	var gotFilter domain.PositionFilter
	positions := &mockPositionRepo{
		listForExport: func(_ context.Context, f domain.PositionFilter, _ []uuid.UUID) ([]domain.TicketPosition, error) {
			gotFilter = f
			return nil, nil
		},
	}
	svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(), positions, checkin.Layout{}, checkin.EncodeOptions{})

	_, err := svc.Export(context.Background(), "osdc26", domain.ExportOptions{ListID: list.ID})

	require.NoError(t, err)
	assert.Equal(t, domain.SortByName, gotFilter.Sort)
	assert.Nil(t, gotFilter.ProductIDs, "all-products lists do not restrict products")
}

func TestExportService_Export_UnknownList_NotFound(t *testing.T) {
	svc := service.NewExportService(eventRepo(), listRepo(allProductsList()), questionRepo(), positionRepo(), checkin.Layout{}, checkin.EncodeOptions{})

	_, err := svc.Export(context.Background(), "osdc26", domain.ExportOptions{ListID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportService_Export_UnknownEvent_NotFound(t *testing.T) {
	list := allProductsList()
	svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(), positionRepo(), checkin.Layout{}, checkin.EncodeOptions{})

	_, err := svc.Export(context.Background(), "nope", domain.ExportOptions{ListID: list.ID})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportService_Export_UnknownQuestion_Validation(t *testing.T) {
	list := allProductsList()
	svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(), positionRepo(), checkin.Layout{}, checkin.EncodeOptions{})

	_, err := svc.Export(context.Background(), "osdc26", domain.ExportOptions{
		ListID: list.ID, QuestionIDs: []uuid.UUID{uuid.New()},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "unknown question")
}

func TestExportService_Export_InvalidOptions(t *testing.T) {
	dup := uuid.New()
	cases := map[string]struct {
		opts domain.ExportOptions
		msg  string
	}{
		"missing list": {domain.ExportOptions{}, "list is required"},
		"bad sort":     {domain.ExportOptions{ListID: uuid.New(), Sort: "price"}, "sort must be one of"},
		"duplicate questions": {
			domain.ExportOptions{ListID: uuid.New(), QuestionIDs: []uuid.UUID{dup, dup}},
			"questions must not contain duplicates",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := service.NewExportService(eventRepo(), listRepo(allProductsList()), questionRepo(), positionRepo(), checkin.Layout{}, checkin.EncodeOptions{})

			_, err := svc.Export(context.Background(), "osdc26", tc.opts)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestExportService_Export_PositionRepoError(t *testing.T) {
	list := allProductsList()
	dbErr := errors.New("connection reset")
	positions := &mockPositionRepo{
		listForExport: func(_ context.Context, _ domain.PositionFilter, _ []uuid.UUID) ([]domain.TicketPosition, error) {
			return nil, dbErr
		},
	}
	svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(), positions, checkin.Layout{}, checkin.EncodeOptions{})

	_, err := svc.Export(context.Background(), "osdc26", domain.ExportOptions{ListID: list.ID})

	assert.ErrorIs(t, err, dbErr)
}

func TestExportService_Export_QuestionColumnsInRequestedOrder(t *testing.T) {
	list := allProductsList()
	diet := domain.Question{ID: uuid.New(), Label: "Diet", Position: 1}
	shirt := domain.Question{ID: uuid.New(), Label: "Shirt size", Position: 2}
	jane := paidPosition("A1", "Jane", "Ticket")
	jane.Answers = map[uuid.UUID]string{diet.ID: "Vegan", shirt.ID: "M"}

	// the repo returns questions in position order
	svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(diet, shirt), positionRepo(jane),
		checkin.Layout{}, checkin.EncodeOptions{})

	file, err := svc.Export(context.Background(), "osdc26", domain.ExportOptions{
		ListID: list.ID, QuestionIDs: []uuid.UUID{shirt.ID, diet.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		`"Order code","Attendee name","Ticket","Shirt size","Diet"`,
		`"A1","Jane",1,"M","Vegan"`,
	}, csvLines(file.Payload))
}

func TestExportService_Export_EncodingOptions(t *testing.T) {
	list := allProductsList()
	jane := paidPosition("A1", "=Jane", "-10% Early bird")

	for _, tc := range []struct {
		name   string
		defuse bool
		want   []string
	}{
		{"verbatim", false, []string{`"Order code","Attendee name","-10% Early bird"`, `"A1","=Jane",1`}},
		{"defused", true, []string{`"Order code","Attendee name","'-10% Early bird"`, `"A1","'=Jane",1`}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewExportService(eventRepo(), listRepo(list), questionRepo(), positionRepo(jane),
				checkin.Layout{}, checkin.EncodeOptions{Defuse: tc.defuse})

			file, err := svc.Export(context.Background(), "osdc26", domain.ExportOptions{ListID: list.ID})

			require.NoError(t, err)
			assert.Equal(t, tc.want, csvLines(file.Payload))
		})
	}
}
