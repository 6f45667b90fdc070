package handler

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CatalogHandler 组件目录
type CatalogHandler struct {
	svc    *service.CatalogService
	builds *service.BuildService
}

func NewCatalogHandler(svc *service.CatalogService, builds *service.BuildService) *CatalogHandler {
	return &CatalogHandler{svc: svc, builds: builds}
}

// Search GET /api/v1/components?kind=&q=&page=&page_size=&apply_filters=
//
// Every hit is annotated against the session's current build.
func (h *CatalogHandler) Search(c *gin.Context) {
	var req service.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "invalid query: "+err.Error())
		return
	}
	build := h.builds.Current(c.Request.Context(), GetSessionID(c))

	result, err := h.svc.Search(c.Request.Context(), req, build)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, result)
}

// Get GET /api/v1/components/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	comp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, comp)
}

// Stats GET /api/v1/components/stats
func (h *CatalogHandler) Stats(c *gin.Context) {
	counts, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, counts)
}

// Import POST /api/v1/admin/components/import
//
// Accepts a JSON array body or a multipart "file" holding a workbook.
func (h *CatalogHandler) Import(c *gin.Context) {
	var (
		result *service.ImportResult
		err    error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, ferr := c.FormFile("file")
		if ferr != nil {
			BadRequest(c, "file is required")
			return
		}
		src, ferr := fh.Open()
		if ferr != nil {
			BadRequest(c, "failed to open upload")
			return
		}
		defer src.Close()
		f, ferr := excelize.OpenReader(src)
		if ferr != nil {
			BadRequest(c, "invalid workbook: "+ferr.Error())
			return
		}
		defer f.Close()
		result, err = h.svc.ImportXLSX(c.Request.Context(), f)
	} else {
		data, rerr := io.ReadAll(c.Request.Body)
		if rerr != nil {
			BadRequest(c, "failed to read request body")
			return
		}
		result, err = h.svc.ImportJSON(c.Request.Context(), data)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, result)
}

// Export GET /api/v1/admin/components/export
func (h *CatalogHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}

// Delete DELETE /api/v1/admin/components/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"deleted": c.Param("id")})
}

// Archive POST /api/v1/admin/components/archive
func (h *CatalogHandler) Archive(c *gin.Context) {
	object, err := h.svc.Archive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, gin.H{"object": object, "archived_by": GetUserID(c)})
}
