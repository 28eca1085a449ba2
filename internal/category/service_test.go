package category_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/adityarahman/celengan/internal"
	"github.com/adityarahman/celengan/internal/category"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Suite")
}

type mockCategoryRepository struct {
	categories map[string]*category.Category
	referenced bool

	reorderedIDs []string
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[string]*category.Category)}
}

func (m *mockCategoryRepository) Create(c *category.Category) error {
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepository) GetByID(categoryID string) (*category.Category, error) {
	c, exists := m.categories[categoryID]
	if !exists {
		return nil, internal.ErrCategoryNotFound
	}
	return c, nil
}

func (m *mockCategoryRepository) List(includeArchived bool) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(m.categories))
	for _, c := range m.categories {
		if !includeArchived && c.Archived() {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCategoryRepository) UpdateFields(categoryID string, fields map[string]interface{}) error {
	if _, exists := m.categories[categoryID]; !exists {
		return internal.ErrCategoryNotFound
	}
	return nil
}

func (m *mockCategoryRepository) Delete(categoryID string) error {
	if _, exists := m.categories[categoryID]; !exists {
		return internal.ErrCategoryNotFound
	}
	delete(m.categories, categoryID)
	return nil
}

func (m *mockCategoryRepository) SetArchived(categoryID string, at *int64) error {
	c, exists := m.categories[categoryID]
	if !exists {
		return internal.ErrCategoryNotFound
	}
	c.ArchivedAt = at
	return nil
}

func (m *mockCategoryRepository) Referenced(categoryID string) (bool, error) {
	return m.referenced, nil
}

func (m *mockCategoryRepository) MaxSortOrder() (int, error) {
	max := -1
	for _, c := range m.categories {
		if c.SortOrder > max {
			max = c.SortOrder
		}
	}
	return max, nil
}

func (m *mockCategoryRepository) Reorder(orderedIDs []string, updatedAt int64) error {
	m.reorderedIDs = orderedIDs
	for position, id := range orderedIDs {
		if c, exists := m.categories[id]; exists {
			c.SortOrder = position
		}
	}
	return nil
}

var _ = Describe("CategoryService", func() {
	var (
		service  *category.Service
		mockRepo *mockCategoryRepository
	)

	BeforeEach(func() {
		mockRepo = newMockCategoryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should place a new category after all existing ones", func() {
			first, err := service.Create(category.CreateCategoryDTO{Name: "Food", Icon: "🍜", Color: "#ff8800"})
			Expect(err).ToNot(HaveOccurred())
			second, err := service.Create(category.CreateCategoryDTO{Name: "Travel"})
			Expect(err).ToNot(HaveOccurred())

			Expect(first.SortOrder).To(Equal(0))
			Expect(second.SortOrder).To(Equal(1))
			Expect(second.ID).To(HavePrefix("cat_"))
		})

		It("should reject an empty name", func() {
			_, err := service.Create(category.CreateCategoryDTO{})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Reorder", func() {
		It("should assign dense orders following the given sequence", func() {
			a, _ := service.Create(category.CreateCategoryDTO{Name: "A"})
			b, _ := service.Create(category.CreateCategoryDTO{Name: "B"})
			c, _ := service.Create(category.CreateCategoryDTO{Name: "C"})

			err := service.Reorder([]string{c.ID, a.ID, b.ID})

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.categories[c.ID].SortOrder).To(Equal(0))
			Expect(mockRepo.categories[a.ID].SortOrder).To(Equal(1))
			Expect(mockRepo.categories[b.ID].SortOrder).To(Equal(2))
		})

		It("should treat an empty sequence as a no-op", func() {
			err := service.Reorder(nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.reorderedIDs).To(BeNil())
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			mockRepo.categories["cat_1"] = &category.Category{ID: "cat_1", Name: "Food"}
		})

		It("should delete an unreferenced category", func() {
			Expect(service.Delete("cat_1")).To(Succeed())
			Expect(mockRepo.categories).NotTo(HaveKey("cat_1"))
		})

		It("should refuse to delete a referenced category", func() {
			mockRepo.referenced = true

			err := service.Delete("cat_1")

			Expect(err).To(MatchError(internal.ErrRowStillReferenced))
		})
	})
})
