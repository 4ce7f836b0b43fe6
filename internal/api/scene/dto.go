package scene

type DescribeRequest struct {
	ImageBase64 string `json:"image_base64" validate:"omitempty,base64"`
}

type DescribeResponse struct {
	Description string `json:"description"`
	Announced   bool   `json:"announced"`
}
