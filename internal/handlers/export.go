package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errExport = "failed to export readings"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// @Summary      Export recent readings as CSV
// @Description  Last 6 hours of readings, returned inline
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]string  "filename, csv"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/export [get]
// @Security     BearerAuth
func (h *Handler) exportCSV(c *gin.Context) {
	filename, data, err := h.services.Export.CSV(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errExport, "export_csv_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"csv":      data,
	})
}

// @Summary      Export recent readings as an Excel workbook
// @Description  Last 6 hours of readings as an .xlsx download
// @Tags         dashboard
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/export/xlsx [get]
// @Security     BearerAuth
func (h *Handler) exportXLSX(c *gin.Context) {
	filename, data, err := h.services.Export.XLSX(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errExport, "export_xlsx_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
