package controllers

import (
	"io"

	"github.com/Aravind-813/GigSphere/storage"
	"github.com/Aravind-813/GigSphere/utils"
	"github.com/gin-gonic/gin"
)

const maxDeliveryFileSize = 50 << 20 // 50 MB

// UploadDeliveryFile stores a delivery attachment and returns its object key.
// The freelancer uploads files first, then references the keys in the
// delivery submission.
// POST /v1/orders/:id/files
func UploadDeliveryFile(c *gin.Context) {
	utils.LogInfo("UploadDeliveryFile called")
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	if deliveryStore == nil {
		utils.InternalServerError(c, "File storage is not configured", nil)
		return
	}

	order, err := orderService.Get(actor, orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order.FreelancerID != actor.ID {
		utils.Forbidden(c, "Only the freelancer can upload delivery files")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "A file is required", err.Error())
		return
	}
	if fileHeader.Size > maxDeliveryFileSize {
		utils.BadRequest(c, "File exceeds the 50 MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalServerError(c, "Failed to read uploaded file", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerError(c, "Failed to read uploaded file", err.Error())
		return
	}

	key, err := deliveryStore.Upload(orderID, data, fileHeader.Filename)
	if err != nil {
		utils.LogError("Failed to upload delivery file for order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to store file", err.Error())
		return
	}

	utils.Success(c, "File uploaded successfully", gin.H{
		"file_key": key,
		"filename": fileHeader.Filename,
		"size":     fileHeader.Size,
	})
}

// GetDeliveryFileURL returns a short-lived download link for a delivery file.
// GET /v1/orders/:id/files/url?key=...
func GetDeliveryFileURL(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	if deliveryStore == nil {
		utils.InternalServerError(c, "File storage is not configured", nil)
		return
	}

	// Access control rides on order visibility.
	if _, err := orderService.Get(actor, orderID); err != nil {
		respondServiceError(c, err)
		return
	}

	key := c.Query("key")
	if key == "" {
		utils.BadRequest(c, "key query parameter is required", nil)
		return
	}
	// Uploads are namespaced per order; a key outside this order's prefix
	// belongs to someone else's files.
	if !storage.KeyBelongsToOrder(orderID, key) {
		utils.Forbidden(c, "The file does not belong to this order")
		return
	}

	exists, err := deliveryStore.Exists(key)
	if err != nil {
		utils.InternalServerError(c, "Failed to check file", err.Error())
		return
	}
	if !exists {
		utils.NotFound(c, "File not found")
		return
	}

	url, err := deliveryStore.DownloadURL(key)
	if err != nil {
		utils.LogError("Failed to presign delivery file %s: %v", key, err)
		utils.InternalServerError(c, "Failed to generate download link", err.Error())
		return
	}

	utils.Success(c, "Download link generated", gin.H{
		"url":        url,
		"expires_in": "1h",
	})
}
