package handlers

import (
	"io"
	"net/http"

	"concierge/services/rag"
	"concierge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler ingests uploaded PDFs into the retrieval index.
type DocumentHandler struct {
	Index  *rag.Index
	Logger *zap.Logger
}

func NewDocumentHandler(index *rag.Index, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{Index: index, Logger: logger}
}

// Upload handles POST /api/documents (multipart form, field "files").
func (h *DocumentHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "no files uploaded", "attach one or more PDFs under the 'files' field")
		return
	}

	ingested := make([]any, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to open upload", err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to read upload", err.Error())
			return
		}

		doc, err := h.Index.IngestPDF(c.Request.Context(), fh.Filename, data)
		if err != nil {
			h.Logger.Error("failed to ingest document",
				zap.String("file", fh.Filename), zap.Error(err))
			utils.JSONError(c, http.StatusUnprocessableEntity, "failed to ingest "+fh.Filename, err.Error())
			return
		}
		ingested = append(ingested, doc)
	}

	c.JSON(http.StatusOK, gin.H{"documents": ingested})
}

// List handles GET /api/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	docs := h.Index.Documents()
	c.JSON(http.StatusOK, gin.H{"documents": docs, "count": len(docs)})
}
