package dto

import (
	"mime/multipart"
	"tourizto/internal/domains/place/model"
	"tourizto/shared"
	gDto "tourizto/shared/dto"
	gModel "tourizto/shared/model"
	"tourizto/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreatePlaceRequest struct {
	Name        string   `json:"name"        validate:"required,min=3,max=150"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Category    string   `json:"category"    validate:"required,max=50"`
	Location    string   `json:"location"    validate:"required,max=200"`
	AdultPrice  float64  `json:"adult_price" validate:"omitempty,min=0"`
	ChildPrice  float64  `json:"child_price" validate:"omitempty,min=0"`
	Rating      float64  `json:"rating"      validate:"omitempty,min=0,max=5"`
	Images      []string `json:"images"      validate:"omitempty,dive,url"`
}

func (c *CreatePlaceRequest) ToModel(user string) model.Place {
	childPrice := c.ChildPrice
	if childPrice == 0 && c.AdultPrice > 0 {
		childPrice = c.AdultPrice / 2
	}

	return model.Place{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Location:    c.Location,
		AdultPrice:  c.AdultPrice,
		ChildPrice:  childPrice,
		Rating:      c.Rating,
		Images:      pq.StringArray(c.Images),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePlaceRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,min=3,max=150"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=2000"`
	Category    string   `db:"category"    json:"category"    validate:"omitempty,max=50"`
	Location    string   `db:"location"    json:"location"    validate:"omitempty,max=200"`
	AdultPrice  float64  `db:"adult_price" json:"adult_price" validate:"omitempty,min=0"`
	ChildPrice  float64  `db:"child_price" json:"child_price" validate:"omitempty,min=0"`
	Rating      float64  `db:"rating"      json:"rating"      validate:"omitempty,min=0,max=5"`
	Images      []string `json:"images"                       validate:"omitempty,dive,url"`
}

type PlaceResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	AdultPrice  float64  `json:"adult_price"`
	ChildPrice  float64  `json:"child_price"`
	Rating      float64  `json:"rating"`
	Images      []string `json:"images"`
	gDto.Metadata
}

func (r *PlaceResponse) FromModel(mod model.Place) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.Category = mod.Category
	r.Location = mod.Location
	r.AdultPrice = mod.AdultPrice
	r.ChildPrice = mod.ChildPrice
	r.Rating = mod.Rating
	r.Images = []string(mod.Images)
	r.Metadata.FromModel(mod.Metadata)
}

type GetPlacesResponse struct {
	Places    []PlaceResponse `json:"places"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetPlacesResponse) FromModels(models []model.Place, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Places = make([]PlaceResponse, len(models))
	for i, mod := range models {
		r.Places[i].FromModel(mod)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

type DeleteImagesRequest struct {
	ImageURLs []string `json:"image_urls" validate:"required,dive,url"`
}
