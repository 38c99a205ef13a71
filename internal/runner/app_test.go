package runner_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/jonmartinstorm/harborsnusern/internal/columns"
	"github.com/jonmartinstorm/harborsnusern/internal/config"
	"github.com/jonmartinstorm/harborsnusern/internal/mocks"
	"github.com/jonmartinstorm/harborsnusern/internal/models"
	"github.com/jonmartinstorm/harborsnusern/internal/render"
	"github.com/jonmartinstorm/harborsnusern/internal/runner"
)

func TestRunner(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Runner Suite")
}

var _ = Describe("runner.Run", func() {
	var (
		ctx  context.Context
		cfg  config.Config
		coll *mocks.MockCollector
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = config.Config{
			BaseURL: "https://harbor.example.com",
			Token:   "t",
			Format:  config.FormatHTML,
		}
		coll = &mocks.MockCollector{}
	})

	It("skal feile på ukjent kolonne før innsamlingen starter", func() {
		cfg.Columns = []string{"bogus"}

		_, err := runner.Run(ctx, cfg, coll)
		Expect(err).To(HaveOccurred())

		var unknownErr *columns.UnknownColumnError
		Expect(errors.As(err, &unknownErr)).To(BeTrue())
		Expect(unknownErr.Key).To(Equal("bogus"))

		// Ingen nettverkskall skal ha skjedd
		coll.AssertNotCalled(GinkgoT(), "Collect")
	})

	It("skal rendre dokumentet og levere warnings videre", func() {
		rows := []models.Row{
			{"project": "library", "repository": "nginx"},
		}
		warnings := []models.Warning{
			{Project: "library", Repository: "nginx", Err: errors.New("artifact-feil")},
		}
		coll.On("Collect", ctx, mock.AnythingOfType("[]columns.Column")).
			Return(rows, warnings, nil)

		result, err := runner.Run(ctx, cfg, coll)
		Expect(err).To(BeNil())

		Expect(result.Document.Format).To(Equal(render.FormatHTML))
		Expect(result.Document.Content).To(ContainSubstring("nginx"))
		Expect(result.Rows).To(HaveLen(1))
		Expect(result.Warnings).To(Equal(warnings))
		Expect(result.Columns).To(HaveLen(len(columns.AllKeys())))
	})

	It("skal bare be om de forespurte kolonnene", func() {
		cfg.Columns = []string{"repository"}
		coll.On("Collect", ctx, mock.MatchedBy(func(cols []columns.Column) bool {
			return len(cols) == 1 && cols[0].Key == "repository"
		})).Return([]models.Row{}, nil, nil)

		result, err := runner.Run(ctx, cfg, coll)
		Expect(err).To(BeNil())
		Expect(result.Columns).To(HaveLen(1))
	})

	It("skal propagere feil fra innsamlingen", func() {
		coll.On("Collect", ctx, mock.AnythingOfType("[]columns.Column")).
			Return(nil, nil, errors.New("API-feil"))

		_, err := runner.Run(ctx, cfg, coll)
		Expect(err).To(MatchError(ContainSubstring("API-feil")))
	})

	It("skal feile på ukjent format", func() {
		cfg.Format = "pdf"
		coll.On("Collect", ctx, mock.AnythingOfType("[]columns.Column")).
			Return([]models.Row{}, nil, nil)

		_, err := runner.Run(ctx, cfg, coll)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("pdf"))
	})
})

var _ = Describe("RunAppSafe", func() {
	It("skal returnere resultatet fra Run", func() {
		coll := &mocks.MockCollector{}
		coll.On("Collect", mock.Anything, mock.AnythingOfType("[]columns.Column")).
			Return([]models.Row{{"project": "library"}}, nil, nil)

		cfg := config.Config{Format: config.FormatMarkdown}
		result, err := runner.RunAppSafe(context.Background(), cfg, coll)
		Expect(err).To(BeNil())
		Expect(result.Document.Format).To(Equal(render.FormatMarkdown))
	})

	It("skal returnere feil fra Run", func() {
		coll := &mocks.MockCollector{}
		cfg := config.Config{Columns: []string{"bogus"}, Format: config.FormatHTML}

		_, err := runner.RunAppSafe(context.Background(), cfg, coll)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("CheckDatabaseConnection", func() {
	var originalOpen func(string, string) (*sql.DB, error)

	BeforeEach(func() {
		originalOpen = runner.OpenSQL
	})

	AfterEach(func() {
		runner.OpenSQL = originalOpen
	})

	It("skal returnere nil når ping lykkes", func() {
		db, dbmock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		Expect(err).To(BeNil())
		dbmock.ExpectPing()
		dbmock.ExpectClose()

		runner.OpenSQL = func(driver, dsn string) (*sql.DB, error) {
			return db, nil
		}

		Expect(runner.CheckDatabaseConnection(context.Background(), "mockdsn")).To(Succeed())
		Expect(dbmock.ExpectationsWereMet()).To(Succeed())
	})

	It("skal returnere feil når ping feiler", func() {
		db, dbmock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		Expect(err).To(BeNil())
		dbmock.ExpectPing().WillReturnError(errors.New("DB nede"))
		dbmock.ExpectClose()

		runner.OpenSQL = func(driver, dsn string) (*sql.DB, error) {
			return db, nil
		}

		err = runner.CheckDatabaseConnection(context.Background(), "mockdsn")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("DB ping-feil"))
	})

	It("skal returnere feil når open feiler", func() {
		runner.OpenSQL = func(driver, dsn string) (*sql.DB, error) {
			return nil, errors.New("ugyldig DSN")
		}

		err := runner.CheckDatabaseConnection(context.Background(), "mockdsn")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("DB open-feil"))
	})
})
