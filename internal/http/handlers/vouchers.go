package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"vouchergen/internal/http/middleware"
	"vouchergen/internal/services"
	"vouchergen/internal/suppliers"
	"vouchergen/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	dirMu       sync.RWMutex
	supplierDir *suppliers.Directory
)

// SetSupplierDirectory stores the loaded directory for the voucher handlers.
func SetSupplierDirectory(d *suppliers.Directory) {
	dirMu.Lock()
	defer dirMu.Unlock()
	supplierDir = d
}

func getSupplierDirectory() *suppliers.Directory {
	dirMu.RLock()
	defer dirMu.RUnlock()
	return supplierDir
}

// GenerateVouchers handles the multipart upload and streams back the merged
// voucher PDF.
//
// Form fields:
//
//	mode        "single" or "group"
//	orga_file   the ORGA planning workbook (.xlsx)
//	client_file .docx confirmation (single) or rooming list .xlsx (group)
//	ref_no      optional booking reference printed on every voucher
//	group_text  optional group label (group mode)
//
// The X-Validation-Passed header reports the pre-flight check; ?report=json
// returns the validation report instead of the PDF.
func GenerateVouchers(c *gin.Context) {
	mode := strings.ToLower(strings.TrimSpace(c.PostForm("mode")))
	if mode != "single" && mode != "group" {
		respondError(c, http.StatusBadRequest, "validation_error", "mode must be \"single\" or \"group\"", nil)
		return
	}

	orgaFH, err := c.FormFile("orga_file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "orga_file is required", nil)
		return
	}
	clientFH, err := c.FormFile("client_file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "client_file is required", nil)
		return
	}

	tmpDir, err := os.MkdirTemp("", "vouchers_")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "cannot create working directory", nil)
		return
	}
	defer os.RemoveAll(tmpDir)

	// Original filenames carry the trip ID, keep them.
	orgaPath := filepath.Join(tmpDir, filepath.Base(orgaFH.Filename))
	clientPath := filepath.Join(tmpDir, filepath.Base(clientFH.Filename))
	if err := c.SaveUploadedFile(orgaFH, orgaPath); err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "cannot store orga_file", nil)
		return
	}
	if err := c.SaveUploadedFile(clientFH, clientPath); err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "cannot store client_file", nil)
		return
	}

	reqID := middleware.GetRequestID(c)
	svc := services.VoucherService{
		Suppliers: getSupplierDirectory(),
		RequestID: reqID,
	}

	refNo := strings.TrimSpace(c.PostForm("ref_no"))
	var result *services.GenerateResult
	if mode == "single" {
		result, err = svc.GenerateSingle(orgaPath, clientPath, refNo)
	} else {
		result, err = svc.GenerateGroup(orgaPath, clientPath, refNo, strings.TrimSpace(c.PostForm("group_text")))
	}
	if err != nil {
		utils.LogEvent(reqID, "vouchers", "generate", "failed: "+err.Error())
		RespondDomainError(c, err)
		return
	}

	c.Header("X-Validation-Passed", fmt.Sprintf("%t", result.Report.Passed))

	if strings.EqualFold(c.Query("report"), "json") {
		c.JSON(http.StatusOK, result.Report)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
