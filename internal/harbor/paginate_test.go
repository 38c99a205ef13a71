package harbor_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jonmartinstorm/harborsnusern/internal/config"
	"github.com/jonmartinstorm/harborsnusern/internal/harbor"
)

type item struct {
	Name string `json:"name"`
}

// pagedServer serverer forhåndsdefinerte sider og teller kallene.
func pagedServer(pages [][]item, calls *[]int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		Expect(err).To(BeNil())
		*calls = append(*calls, page)

		var records []item
		if page-1 < len(pages) {
			records = pages[page-1]
		}
		if records == nil {
			records = []item{}
		}
		w.Header().Set("Content-Type", "application/json")
		Expect(json.NewEncoder(w).Encode(records)).To(Succeed())
	}))
}

func pagedClient(baseURL string, pageSize int) *harbor.Client {
	return harbor.NewClient(config.Config{
		BaseURL:        baseURL,
		Token:          "t",
		TimeoutSeconds: 5,
		PageSize:       pageSize,
	})
}

var _ = Describe("GetAll", func() {
	var (
		ctx   context.Context
		calls []int
	)

	BeforeEach(func() {
		ctx = context.Background()
		calls = nil
	})

	It("skal konkatenere alle sider i rekkefølge og stoppe på kort side", func() {
		ts := pagedServer([][]item{
			{{Name: "a"}, {Name: "b"}},
			{{Name: "c"}, {Name: "d"}},
			{{Name: "e"}},
		}, &calls)
		defer ts.Close()

		items, err := harbor.GetAll[item](ctx, pagedClient(ts.URL, 2), "/list", nil, nil)
		Expect(err).To(BeNil())

		names := make([]string, 0, len(items))
		for _, it := range items {
			names = append(names, it.Name)
		}
		Expect(names).To(Equal([]string{"a", "b", "c", "d", "e"}))
		Expect(calls).To(Equal([]int{1, 2, 3}))
	})

	It("skal hente én side til når siste side er nøyaktig full", func() {
		ts := pagedServer([][]item{
			{{Name: "a"}, {Name: "b"}},
		}, &calls)
		defer ts.Close()

		items, err := harbor.GetAll[item](ctx, pagedClient(ts.URL, 2), "/list", nil, nil)
		Expect(err).To(BeNil())
		Expect(items).To(HaveLen(2))
		Expect(calls).To(Equal([]int{1, 2}))
	})

	It("skal terminere på tom første side", func() {
		ts := pagedServer(nil, &calls)
		defer ts.Close()

		items, err := harbor.GetAll[item](ctx, pagedClient(ts.URL, 2), "/list", nil, nil)
		Expect(err).To(BeNil())
		Expect(items).To(BeEmpty())
		Expect(calls).To(Equal([]int{1}))
	})

	It("skal ignorere total-count-headere – kort side er eneste regel", func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Lyver om totalen; skal ikke spille noen rolle.
			w.Header().Set("X-Total-Count", "9999")
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintln(w, `[{"name": "eneste"}]`)
		}))
		defer ts.Close()

		items, err := harbor.GetAll[item](ctx, pagedClient(ts.URL, 2), "/list", nil, nil)
		Expect(err).To(BeNil())
		Expect(items).To(HaveLen(1))
	})

	It("skal sende page og page_size som query-parametre", func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Query().Get("page")).To(Equal("1"))
			Expect(r.URL.Query().Get("page_size")).To(Equal("25"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintln(w, `[]`)
		}))
		defer ts.Close()

		_, err := harbor.GetAll[item](ctx, pagedClient(ts.URL, 25), "/list", nil, nil)
		Expect(err).To(BeNil())
	})

	It("skal propagere feil fra et sidekall", func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = fmt.Fprint(w, "upstream nede")
		}))
		defer ts.Close()

		_, err := harbor.GetAll[item](ctx, pagedClient(ts.URL, 2), "/list", nil, nil)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("502"))
	})
})

var _ = Describe("Liste-endepunktene", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("skal normalisere repository-navn og stemple prosjektnavn", func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/v2.0/projects/library/repositories"))
			Expect(r.Header.Get("X-Is-Resource-Name")).To(Equal("true"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintln(w, `[{"id": 1, "name": "library/nginx", "artifact_count": 3}]`)
		}))
		defer ts.Close()

		repos, err := pagedClient(ts.URL, 100).ListRepositories(ctx, "library")
		Expect(err).To(BeNil())
		Expect(repos).To(HaveLen(1))
		Expect(repos[0].Name).To(Equal("nginx"))
		Expect(repos[0].ProjectName).To(Equal("library"))
		Expect(repos[0].ArtifactCount).To(Equal(int64(3)))
	})

	It("skal escape skråstrek i nøstede repository-navn", func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.EscapedPath()).To(ContainSubstring("repositories/base%2Fnginx/artifacts"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintln(w, `[]`)
		}))
		defer ts.Close()

		_, err := pagedClient(ts.URL, 100).ListArtifacts(ctx, "library", "base/nginx")
		Expect(err).To(BeNil())
	})

	It("skal liste prosjekter med id og navn", func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/v2.0/projects"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintln(w, `[{"project_id": 2, "name": "library", "repo_count": 5}]`)
		}))
		defer ts.Close()

		projects, err := pagedClient(ts.URL, 100).ListProjects(ctx)
		Expect(err).To(BeNil())
		Expect(projects).To(HaveLen(1))
		Expect(projects[0].ID).To(Equal(int64(2)))
		Expect(projects[0].Name).To(Equal("library"))
		Expect(projects[0].RepoCount).To(Equal(int64(5)))
	})
})
