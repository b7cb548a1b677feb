package models

import (
	"bytes"
	"net/http"
	"net/url"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	awsSessionPackage "github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/globalsign/mgo/bson"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

var (
	DB             *gorm.DB
	CurrentProfile Profile

	// Notify, when set, pushes an event to websocket subscribers of a
	// conference. conferenceID 0 addresses every connected client.
	Notify func(conferenceID uint, eventType string, data interface{})

	awsSession, _ = awsSessionPackage.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ID"),
			os.Getenv("AWS_SECRET"),
			""),
	})
)

func SetCurrentProfile(p *Profile) {
	CurrentProfile = *p
}

func IsCurrentProfileEmpty() bool {
	return CurrentProfile == Profile{}
}

func InitDB() *gorm.DB {
	DB, _ = gorm.Open("postgres", os.Getenv("DATABASE_URL"))
	if DB == nil {
		panic("db nil")
	}

	DB.AutoMigrate(&Profile{}, &Conference{}, &Session{}, &WishlistEntry{}, &Registration{})
	DB.Model(&Conference{}).AddForeignKey("profile_id", "profiles(id)", "CASCADE", "CASCADE")
	DB.Model(&Session{}).AddForeignKey("conference_id", "conferences(id)", "CASCADE", "CASCADE")
	DB.Model(&WishlistEntry{}).AddForeignKey("session_id", "sessions(id)", "CASCADE", "CASCADE")
	DB.Model(&WishlistEntry{}).AddForeignKey("profile_id", "profiles(id)", "CASCADE", "CASCADE")
	DB.Model(&Registration{}).AddForeignKey("conference_id", "conferences(id)", "CASCADE", "CASCADE")
	DB.Model(&Registration{}).AddForeignKey("profile_id", "profiles(id)", "CASCADE", "CASCADE")
	return DB
}

func notify(conferenceID uint, eventType string, data interface{}) {
	if Notify != nil {
		Notify(conferenceID, eventType, data)
	}
}

func FindProfileByTempToken(token string) (profile Profile) {
	profile = Profile{}
	DB.Find(&profile, "temporary_token = ?", token)
	SetCurrentProfile(&profile)
	return
}

func FindProfileByPubToken(token string) (profile Profile) {
	profile = Profile{}
	DB.Find(&profile, "public_token = ?", token)
	SetCurrentProfile(&profile)
	return
}

func GenerateTempTokenUrl(tempToken string, baseUrl string) string {
	var buf bytes.Buffer
	buf.WriteString(baseUrl)
	v := url.Values{
		"temporary_token": {tempToken},
	}
	buf.WriteString("?")
	buf.WriteString(v.Encode())
	return buf.String()
}

func generateAWSLink(fileName string) string {
	var link bytes.Buffer
	link.WriteString("https://")
	link.WriteString(os.Getenv("AWS_BUCKET"))
	link.WriteString(".s3.amazonaws.com/")
	link.WriteString(fileName)
	return link.String()
}

func uploadFileToS3(s *awsSessionPackage.Session, file []byte, filename string, size int) (string, error) {
	// salt the object name so reuploads never collide
	tempFileName := "thumbnails/" + bson.NewObjectId().Hex() + filename

	_, err := s3.New(s).PutObject(&s3.PutObjectInput{
		Bucket:               aws.String(os.Getenv("AWS_BUCKET")),
		Key:                  aws.String(tempFileName),
		ACL:                  aws.String("public-read"),
		Body:                 bytes.NewReader(file),
		ContentLength:        aws.Int64(int64(size)),
		ContentType:          aws.String(http.DetectContentType(file)),
		ContentDisposition:   aws.String("attachment"),
		ServerSideEncryption: aws.String("AES256"),
		StorageClass:         aws.String("INTELLIGENT_TIERING"),
	})
	if err != nil {
		return "", err
	}

	return tempFileName, err
}
