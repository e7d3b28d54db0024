package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"boat-rental-server/models"
	"boat-rental-server/storage"
	"boat-rental-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateBoatInput struct {
	Type           string   `json:"type" validate:"required"`
	Manufacturer   string   `json:"manufacturer" validate:"required"`
	Model          string   `json:"model" validate:"required"`
	Year           int      `json:"year" validate:"min=0"`
	Description    string   `json:"description" validate:"max=2000"`
	CityHarbour    string   `json:"cityHarbour" validate:"required"`
	SkipperOption  string   `json:"skipperOption" validate:"required"`
	Capacity       int      `json:"capacity" validate:"required,min=1"`
	Length         float64  `json:"length" validate:"required,min=0"`
	EngineType     string   `json:"engineType" validate:"required"`
	EnginePower    float64  `json:"enginePower" validate:"required,min=0"`
	ReferencePrice float64  `json:"referencePrice" validate:"min=0"`
	Images         []string `json:"images"`
}

// UpdateBoatInput is an explicit patch: nil fields are left untouched.
type UpdateBoatInput struct {
	Type           *string  `json:"type"`
	Manufacturer   *string  `json:"manufacturer"`
	Model          *string  `json:"model"`
	Year           *int     `json:"year"`
	Description    *string  `json:"description"`
	CityHarbour    *string  `json:"cityHarbour"`
	SkipperOption  *string  `json:"skipperOption"`
	Capacity       *int     `json:"capacity"`
	Length         *float64 `json:"length"`
	EngineType     *string  `json:"engineType"`
	EnginePower    *float64 `json:"enginePower"`
	ReferencePrice *float64 `json:"referencePrice"`
}

type AddBoatImagesInput struct {
	Images []string `json:"images" validate:"required,min=1,max=5"`
}

type RemoveBoatImageInput struct {
	ImageURL string `json:"imageURL" validate:"required"`
}

func CreateBoat(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateBoatInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if msg, ok := validateBoatEnums(input.Type, input.SkipperOption, input.EngineType); !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", msg, ctx)
		return
	}

	images := insertBoatImages(input.Images, userID)
	imagesJSON, _ := json.Marshal(images)

	boat := models.Boat{
		OwnerID:        userID,
		Type:           input.Type,
		Manufacturer:   input.Manufacturer,
		BoatModel:      input.Model,
		Year:           input.Year,
		Description:    input.Description,
		CityHarbour:    input.CityHarbour,
		SkipperOption:  input.SkipperOption,
		Capacity:       input.Capacity,
		BoatLength:     input.Length,
		EngineType:     input.EngineType,
		EnginePower:    input.EnginePower,
		ReferencePrice: input.ReferencePrice,
		Images:         datatypes.JSON(imagesJSON),
	}

	if err := storage.DB.Create(&boat).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&boat)
}

func GetBoat(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var boat models.Boat
	if err := storage.DB.Preload("Availability").First(&boat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&boat)
}

func GetMyBoats(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var boats []models.Boat
	if err := storage.DB.Where("owner_id = ?", userID).Order("created_at DESC").Find(&boats).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(boats)
}

func UpdateBoat(ctx iris.Context) {
	boat, ok := getOwnedBoat(ctx)
	if !ok {
		return
	}

	var input UpdateBoatInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Type != nil && !slices.Contains(models.BoatTypes, *input.Type) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid boat type.", ctx)
		return
	}
	if input.SkipperOption != nil && !slices.Contains(models.SkipperOptions, *input.SkipperOption) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid skipper option.", ctx)
		return
	}
	if input.EngineType != nil && !slices.Contains(models.EngineTypes, *input.EngineType) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid engine type.", ctx)
		return
	}

	if input.Type != nil {
		boat.Type = *input.Type
	}
	if input.Manufacturer != nil {
		boat.Manufacturer = *input.Manufacturer
	}
	if input.Model != nil {
		boat.BoatModel = *input.Model
	}
	if input.Year != nil {
		boat.Year = *input.Year
	}
	if input.Description != nil {
		boat.Description = *input.Description
	}
	if input.CityHarbour != nil {
		boat.CityHarbour = *input.CityHarbour
	}
	if input.SkipperOption != nil {
		boat.SkipperOption = *input.SkipperOption
	}
	if input.Capacity != nil {
		boat.Capacity = *input.Capacity
	}
	if input.Length != nil {
		boat.BoatLength = *input.Length
	}
	if input.EngineType != nil {
		boat.EngineType = *input.EngineType
	}
	if input.EnginePower != nil {
		boat.EnginePower = *input.EnginePower
	}
	if input.ReferencePrice != nil {
		boat.ReferencePrice = *input.ReferencePrice
	}

	if err := storage.DB.Save(boat).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(boat)
}

func DeleteBoat(ctx iris.Context) {
	boat, ok := getOwnedBoat(ctx)
	if !ok {
		return
	}

	// Remote images are best-effort deletions; the row goes regardless.
	var images []string
	if boat.Images != nil {
		json.Unmarshal(boat.Images, &images)
	}
	for _, imageURL := range images {
		if !storage.DeleteImage(imageURL) {
			fmt.Printf("failed to delete boat image %s\n", imageURL)
		}
	}

	if err := storage.DB.Delete(boat).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "boat.delete", "boat", boat.ID, boat, nil)

	ctx.JSON(iris.Map{"deleted": true})
}

func AddBoatImages(ctx iris.Context) {
	boat, ok := getOwnedBoat(ctx)
	if !ok {
		return
	}

	var input AddBoatImagesInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var images []string
	if boat.Images != nil {
		json.Unmarshal(boat.Images, &images)
	}

	images = append(images, insertBoatImages(input.Images, boat.OwnerID)...)
	imagesJSON, _ := json.Marshal(images)
	boat.Images = datatypes.JSON(imagesJSON)

	if err := storage.DB.Save(boat).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(boat)
}

func RemoveBoatImage(ctx iris.Context) {
	boat, ok := getOwnedBoat(ctx)
	if !ok {
		return
	}

	var input RemoveBoatImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var images []string
	if boat.Images != nil {
		json.Unmarshal(boat.Images, &images)
	}

	idx := slices.Index(images, input.ImageURL)
	if idx == -1 {
		utils.CreateNotFound(ctx)
		return
	}
	images = slices.Delete(images, idx, idx+1)

	if !storage.DeleteImage(input.ImageURL) {
		fmt.Printf("failed to delete boat image %s\n", input.ImageURL)
	}

	imagesJSON, _ := json.Marshal(images)
	boat.Images = datatypes.JSON(imagesJSON)

	if err := storage.DB.Save(boat).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(boat)
}

// getOwnedBoat is the single ownership gate for boat mutations: it loads the boat
// from the {id} parameter and requires the caller to be its owner. Writes the
// error response itself when it returns ok=false.
func getOwnedBoat(ctx iris.Context) (*models.Boat, bool) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var boat models.Boat
	if err := storage.DB.First(&boat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return nil, false
		}
		utils.CreateInternalServerError(ctx)
		return nil, false
	}

	if boat.OwnerID != userID {
		utils.CreateForbidden(ctx)
		return nil, false
	}

	return &boat, true
}

func validateBoatEnums(boatType, skipperOption, engineType string) (string, bool) {
	if !slices.Contains(models.BoatTypes, boatType) {
		return "Invalid boat type.", false
	}
	if !slices.Contains(models.SkipperOptions, skipperOption) {
		return "Invalid skipper option.", false
	}
	if !slices.Contains(models.EngineTypes, engineType) {
		return "Invalid engine type.", false
	}
	return "", true
}

// insertBoatImages uploads base64 payloads and returns the hosted URLs. Inputs
// that are already URLs pass through untouched.
func insertBoatImages(images []string, ownerID uint) []string {
	urls := []string{}
	for i, image := range images {
		if len(image) > 8 && (image[:7] == "http://" || image[:8] == "https://") {
			urls = append(urls, image)
			continue
		}
		publicID := "boat_" + strconv.FormatUint(uint64(ownerID), 10) + "_" + strconv.Itoa(i) + "_" + utils.GenerateShortToken(4)
		if url := storage.UploadBase64Image(image, publicID); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
