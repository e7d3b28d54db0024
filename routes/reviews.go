package routes

import (
	"errors"

	"boat-rental-server/models"
	"boat-rental-server/storage"
	"boat-rental-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type SubmitReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

var errAlreadyReviewed = errors.New("boat already reviewed by this user")

// SubmitReview stores a review and recomputes the boat's rating aggregate.
// The insert and the recomputation share one transaction, so the denormalized
// averageRating/ratingsCount on the boat always match the full review set.
func SubmitReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	boatID := ctx.Params().GetUintDefault("boatId", 0)
	if boatID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid boat ID.", ctx)
		return
	}

	var input SubmitReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var review models.Review
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		var boat models.Boat
		if err := tx.First(&boat, boatID).Error; err != nil {
			return err
		}

		var existing models.Review
		dupQuery := tx.Where("boat_id = ? AND user_id = ?", boatID, userID).Limit(1).Find(&existing)
		if dupQuery.Error != nil {
			return dupQuery.Error
		}
		if dupQuery.RowsAffected > 0 {
			return errAlreadyReviewed
		}

		review = models.Review{
			UserID:  userID,
			BoatID:  boatID,
			Rating:  input.Rating,
			Comment: input.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		// Full rescan, not an incremental update: the aggregate self-heals on
		// every submission.
		var reviews []models.Review
		if err := tx.Where("boat_id = ?", boatID).Find(&reviews).Error; err != nil {
			return err
		}
		average, count := summarizeRatings(reviews)

		return tx.Model(&models.Boat{}).Where("id = ?", boatID).
			Updates(map[string]interface{}{
				"average_rating": average,
				"ratings_count":  count,
			}).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		if errors.Is(txErr, errAlreadyReviewed) {
			utils.CreateError(iris.StatusConflict, "Conflict", "You have already reviewed this boat.", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Review submitted successfully", "review": review})
}

// CheckReviewed tells the client whether the caller already reviewed the boat.
func CheckReviewed(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	boatID := ctx.Params().GetUintDefault("boatId", 0)
	if boatID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid boat ID.", ctx)
		return
	}

	var count int64
	if err := storage.DB.Model(&models.Review{}).
		Where("boat_id = ? AND user_id = ?", boatID, userID).
		Count(&count).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"hasReviewed": count > 0})
}

// ListBoatReviews returns a boat's reviews, newest first, with reviewer info.
func ListBoatReviews(ctx iris.Context) {
	boatID := ctx.Params().GetUintDefault("boatId", 0)
	if boatID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid boat ID.", ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("boat_id = ?", boatID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	average, count := summarizeRatings(reviews)

	var reviewResponses []iris.Map
	for _, review := range reviews {
		reviewResponses = append(reviewResponses, iris.Map{
			"id":        review.ID,
			"userID":    review.UserID,
			"rating":    review.Rating,
			"comment":   review.Comment,
			"createdAt": review.CreatedAt,
			"user": iris.Map{
				"firstName": review.User.FirstName,
				"lastName":  review.User.LastName,
				"avatarURL": review.User.AvatarURL,
			},
		})
	}

	ctx.JSON(iris.Map{
		"reviews":       reviewResponses,
		"averageRating": average,
		"reviewCount":   count,
	})
}

// summarizeRatings computes the mean rating and count over a full review set.
func summarizeRatings(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	total := 0.0
	for _, review := range reviews {
		total += float64(review.Rating)
	}
	return total / float64(len(reviews)), len(reviews)
}
