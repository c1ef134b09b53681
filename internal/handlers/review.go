package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/services"
	"github.com/teamhub-dev/teamhub/internal/utils"
	"gorm.io/gorm"
)

type AddLinkAttachmentRequest struct {
	AttachmentName string `json:"attachment_name" binding:"required"`
	Link           string `json:"link" binding:"required"`
}

type AttachmentResponse struct {
	ID             uint   `json:"id"`
	ReviewID       uint   `json:"review_id"`
	AttachmentName string `json:"attachment_name"`
	Link           string `json:"link"`
}

type ReviewSummary struct {
	ID          uint                 `json:"id"`
	Stage       string               `json:"stage"`
	Department  string               `json:"department,omitempty"`
	Result      string               `json:"result,omitempty"`
	IsCompleted bool                 `json:"is_completed"`
	CompletedOn *time.Time           `json:"completed_on"`
	ScheduledOn time.Time            `json:"scheduled_on"`
	Attachments []AttachmentResponse `json:"attachments"`
}

// ListReviews returns the team's review stages, newest first, each enriched
// with its attachments. Attachments are fetched in a single query keyed by
// review id and grouped here rather than per review.
func ListReviews(ctx *gin.Context) {
	_, teamID, err := utils.RequireTeam(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "You are not part of a team yet"})
		return
	}

	var reviews []models.Review

	if err := db.DB.Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		log.Printf("Failed to fetch reviews: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}

	reviewIDs := make([]uint, 0, len(reviews))
	for _, review := range reviews {
		reviewIDs = append(reviewIDs, review.ID)
	}

	grouped := make(map[uint][]AttachmentResponse)

	if len(reviewIDs) > 0 {
		var attachments []models.ReviewAttachment

		if err := db.DB.Where("review_id IN ?", reviewIDs).
			Order("created_at DESC").
			Find(&attachments).Error; err != nil {
			log.Printf("Failed to fetch attachments: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachments"})
			return
		}

		for _, attachment := range attachments {
			grouped[attachment.ReviewID] = append(grouped[attachment.ReviewID], attachmentResponse(attachment))
		}
	}

	summaries := make([]ReviewSummary, 0, len(reviews))
	for _, review := range reviews {
		attachments := grouped[review.ID]
		if attachments == nil {
			attachments = []AttachmentResponse{}
		}

		summaries = append(summaries, ReviewSummary{
			ID:          review.ID,
			Stage:       review.Stage,
			Department:  review.Department,
			Result:      review.Result,
			IsCompleted: review.IsCompleted,
			CompletedOn: review.CompletedOn,
			ScheduledOn: review.CreatedAt,
			Attachments: attachments,
		})
	}

	ctx.JSON(http.StatusOK, summaries)
}

// AddAttachment accepts either a JSON body carrying an external link or a
// multipart form carrying a file, which is pushed through the upload
// collaborator first. Both end up as the same (name, link) row.
func AddAttachment(ctx *gin.Context) {
	_, teamID, err := utils.RequireTeam(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "You are not part of a team yet"})
		return
	}

	reviewID, err := utils.GetReviewID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var review models.Review

	if err := db.DB.Where("id = ? AND team_id = ?", reviewID, teamID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		} else {
			log.Printf("Database error when fetching review: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve review"})
		}
		return
	}

	attachment := models.ReviewAttachment{ReviewID: review.ID}

	contentType := ctx.ContentType()

	switch {
	case contentType == "application/json":
		var req AddLinkAttachmentRequest

		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Attachment name and link are required"})
			return
		}

		attachment.AttachmentName = req.AttachmentName
		attachment.Link = req.Link

	case strings.HasPrefix(contentType, "multipart/"):
		name := strings.TrimSpace(ctx.PostForm("attachment_name"))

		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Attachment name is required"})
			return
		}

		fileHeader, err := ctx.FormFile("file")

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
			return
		}

		file, err := fileHeader.Open()

		if err != nil {
			log.Printf("Failed to open uploaded file: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		fileName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), fileHeader.Filename)

		url, err := services.UploadFile(file, fileName)

		if err != nil {
			log.Printf("Upload failed for %s: %v", fileName, err)
			ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload the file"})
			return
		}

		attachment.AttachmentName = name
		attachment.Link = url

	default:
		ctx.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Unsupported content type"})
		return
	}

	if err := db.DB.Create(&attachment).Error; err != nil {
		log.Printf("Failed to create attachment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add attachment"})
		return
	}

	ctx.JSON(http.StatusCreated, attachmentResponse(attachment))
}

func DeleteAttachment(ctx *gin.Context) {
	_, teamID, err := utils.RequireTeam(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "You are not part of a team yet"})
		return
	}

	attachmentID, err := utils.GetAttachmentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var attachment models.ReviewAttachment

	if err := db.DB.Joins("JOIN reviews ON reviews.id = review_attachments.review_id").
		Where("review_attachments.id = ? AND reviews.team_id = ?", attachmentID, teamID).
		First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		} else {
			log.Printf("Database error when fetching attachment: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachment"})
		}
		return
	}

	if err := db.DB.Delete(&attachment).Error; err != nil {
		log.Printf("Failed to delete attachment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete attachment"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func attachmentResponse(attachment models.ReviewAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:             attachment.ID,
		ReviewID:       attachment.ReviewID,
		AttachmentName: attachment.AttachmentName,
		Link:           attachment.Link,
	}
}
