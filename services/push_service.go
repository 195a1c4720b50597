package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/ethan-devlab/RMRS-Deploy/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"
)

// PushService delivers reminder notifications to registered mobile
// devices through SNS platform endpoints.
type PushService struct {
	db             *gorm.DB
	sns            *awssns.Client
	fcmPlatformArn string
}

func NewPushService(db *gorm.DB) (*PushService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-southeast-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		db:             db,
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: os.Getenv("SNS_FCM_ARN"),
	}, nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform"` // "android" | "ios"
	Token    string `json:"token"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) RegisterDevice(userID uint, req RegisterDeviceReq) error {
	platform := strings.ToLower(req.Platform)
	if platform != "android" && platform != "ios" {
		return errors.New("unknown platform")
	}
	if p.fcmPlatformArn == "" {
		return errors.New("SNS_FCM_ARN not set")
	}

	out, err := p.sns.CreatePlatformEndpoint(context.TODO(), &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.fcmPlatformArn),
		Token:                  aws.String(req.Token),
	})
	if err != nil {
		return err
	}

	device := models.UserDevice{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   tokenHash(req.Token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
	}
	return p.db.
		Where("token_hash = ?", device.TokenHash).
		Assign(device).
		FirstOrCreate(&device).Error
}

func (p *PushService) PushToUser(userID uint, title, body string, data map[string]string) {
	var devices []models.UserDevice
	if err := p.db.Where("user_id = ? AND enabled = ?", userID, true).Find(&devices).Error; err != nil {
		log.Printf("push: listing devices failed: %v", err)
		return
	}

	payload := map[string]any{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	}
	inner, _ := json.Marshal(payload)
	wrapped, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(inner),
	})

	for _, d := range devices {
		_, err := p.sns.Publish(context.TODO(), &awssns.PublishInput{
			TargetArn:        aws.String(d.EndpointARN),
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(wrapped)),
		})
		if err != nil {
			log.Printf("push: publish to device %d failed: %v", d.ID, err)
		}
	}
}
