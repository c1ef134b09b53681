package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetLogID(ctx *gin.Context) (uint64, error) {
	return pathID(ctx, "log_id", "Log")
}

func GetReviewID(ctx *gin.Context) (uint64, error) {
	return pathID(ctx, "review_id", "Review")
}

func GetAttachmentID(ctx *gin.Context) (uint64, error) {
	return pathID(ctx, "attachment_id", "Attachment")
}

func pathID(ctx *gin.Context, param, label string) (uint64, error) {
	idStr := ctx.Param(param)

	if idStr == "" {
		return 0, errors.New(label + " ID not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + label + " ID")
	}

	return id, nil
}
