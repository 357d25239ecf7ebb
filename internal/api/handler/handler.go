// Package handler giữ nguyên hợp đồng wire của frontend cũ: mọi response
// đều là HTTP 200, lỗi nằm trong trường "error" của body JSON. Client phân
// biệt thành công/thất bại bằng sự hiện diện của "error", không bằng status.
package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"parkwise/internal/service"
)

var businessErrs = []error{
	service.ErrUnpaidBalance,
	service.ErrAlreadyActive,
	service.ErrSpotTaken,
	service.ErrLotMisconfigured,
	service.ErrNoActiveSession,
	service.ErrNotPayable,
	service.ErrLogNotFound,
	service.ErrEmailExists,
	service.ErrInvalidCredentials,
}

// fail trả lỗi về client. Lỗi nghiệp vụ mang thông điệp của chính nó;
// lỗi hạ tầng chỉ được log, client nhận thông điệp chung.
func fail(c *gin.Context, err error) {
	for _, be := range businessErrs {
		if errors.Is(err, be) {
			failMsg(c, be.Error())
			return
		}
	}
	log.Printf("Lỗi không mong đợi: %v", err)
	failMsg(c, "Server error")
}

func failMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"error": msg})
}
