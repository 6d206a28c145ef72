package handler

import (
	"net/http"

	entity "leafloop/internal/domain"
	service "leafloop/internal/service/postgresql"
	"leafloop/internal/storage"

	"github.com/gin-gonic/gin"
)

const maxBookPhotos = 5

type BookHandler struct {
	bookService *service.BookService
	photos      *storage.PhotoStore
}

func NewBookHandler(bookService *service.BookService, photos *storage.PhotoStore) *BookHandler {
	return &BookHandler{bookService: bookService, photos: photos}
}

// Create adds a book to the caller's vault (POST /books, multipart).
func (h *BookHandler) Create(c *gin.Context) {
	userID := currentUserID(c)

	var input entity.CreateBookInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form-data", "detail": err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form-data", "detail": err.Error()})
		return
	}

	files := form.File["photos"]
	if len(files) > maxBookPhotos {
		files = files[:maxBookPhotos]
	}
	var photoURLs []string
	for _, file := range files {
		name := h.photos.NewName(file.Filename)
		if err := c.SaveUploadedFile(file, h.photos.Path(name)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		photoURLs = append(photoURLs, h.photos.URL(name))
	}

	book, err := h.bookService.Create(c.Request.Context(), userID, input, photoURLs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book added to your vault.",
		"book":    book,
	})
}

// MyBooks lists the caller's whole vault, listed or not (GET /books/my).
func (h *BookHandler) MyBooks(c *gin.Context) {
	books, err := h.bookService.MyBooks(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// Update replaces the editable fields of a book (PUT /books/:id).
func (h *BookHandler) Update(c *gin.Context) {
	bookID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input entity.UpdateBookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), currentUserID(c), bookID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

// Delete removes a book and, best-effort, its stored photos (DELETE /books/:id).
func (h *BookHandler) Delete(c *gin.Context) {
	bookID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.bookService.Delete(c.Request.Context(), currentUserID(c), bookID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted."})
}

// SetListing toggles public visibility (PATCH /books/:id/listing).
func (h *BookHandler) SetListing(c *gin.Context) {
	bookID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input entity.SetListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	book, err := h.bookService.SetListing(c.Request.Context(), currentUserID(c), bookID, input.IsListed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

// Browse serves the public marketplace (GET /market/books).
func (h *BookHandler) Browse(c *gin.Context) {
	var filter entity.BrowseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "detail": err.Error()})
		return
	}

	books, err := h.bookService.Browse(c.Request.Context(), optionalUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// MarketBook serves one listed book plus the owner's other listed books
// (GET /market/books/:id).
func (h *BookHandler) MarketBook(c *gin.Context) {
	bookID, ok := parseID(c, "id")
	if !ok {
		return
	}

	book, others, err := h.bookService.MarketBook(c.Request.Context(), bookID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book, "more_from_owner": others})
}
