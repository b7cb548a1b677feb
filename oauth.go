package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"os"

	"confcentral/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type OToken struct {
	*oauth2.Token
	TemporaryToken string
	PublicToken    string
}

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

func newGoogleConfig() oauth2.Config {
	redirectUrl := fmt.Sprintf("%v%v", os.Getenv("BASE_URL"), "users/auth/google/callback")
	return oauth2.Config{
		ClientID:     os.Getenv("CLIENT_ID"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),
		RedirectURL:  redirectUrl,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

var googleConfig = newGoogleConfig()

func randToken(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func AuthWithTempTokenHandler(w http.ResponseWriter, r *http.Request) {
	keys := r.URL.Query()

	temporaryToken := keys.Get("temporary_token")

	models.FindProfileByTempToken(temporaryToken)
	if models.IsCurrentProfileEmpty() {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	var oAuthToken oauth2.Token
	token := OToken{Token: &oAuthToken, PublicToken: fmt.Sprint(uuid.New()), TemporaryToken: ""}

	UpdateProfileToken(&models.CurrentProfile, &token)

	fmt.Fprint(w, models.CurrentProfile.PublicToken)
}

func AuthWithGoogleHandler(w http.ResponseWriter, r *http.Request) {
	state := randToken(24)
	http.SetCookie(w, &http.Cookie{Name: "state", Value: state, Path: "/"})
	authorizationURL := googleConfig.AuthCodeURL(state)

	http.Redirect(w, r, authorizationURL, 301)
}

func AuthGoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	authorizationCode := r.URL.Query().Get("code")

	ck, err := r.Cookie("state")
	if err == nil && (r.URL.Query().Get("state") != ck.Value) {
		http.Error(w, "Error: State is not the same", http.StatusBadRequest)
		return
	}
	oAuthToken, err := googleConfig.Exchange(context.Background(), authorizationCode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	meRequest, err := http.NewRequest("GET", "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	meRequest.Header.Set("Authorization", fmt.Sprint("Bearer ", oAuthToken.AccessToken))

	meResponse, err := client.Do(meRequest)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	defer meResponse.Body.Close()

	var googleUserInfo GoogleUserInfo
	bodyByte, _ := ioutil.ReadAll(meResponse.Body)
	err = json.Unmarshal(bodyByte, &googleUserInfo)
	if err != nil {
		log.Println("Unable to unmarshal user info")
	}

	token := OToken{Token: oAuthToken, PublicToken: "", TemporaryToken: fmt.Sprint(uuid.New())}
	FindOrCreateProfile(&token, &googleUserInfo)

	if models.IsCurrentProfileEmpty() {
		url := fmt.Sprintf("%v%v", os.Getenv("BASE_URL"), "auth")
		http.Redirect(w, r, url, http.StatusFound)
		return
	}
	tempUrl := fmt.Sprintf("%v%v", os.Getenv("BASE_URL"), "temp_url_handler")
	tempTokenURL := models.GenerateTempTokenUrl(models.CurrentProfile.TemporaryToken, tempUrl)
	http.Redirect(w, r, tempTokenURL, 301)
}

func FindOrCreateProfile(token *OToken, userInfo *GoogleUserInfo) models.Profile {
	profile := models.Profile{}

	DB.Find(&profile, "google_id = ?", userInfo.ID)
	if (models.Profile{} != profile) {
		UpdateProfileToken(&profile, token)
		models.SetCurrentProfile(&profile)
		return profile
	}

	CreateProfile(&profile, token, userInfo)
	models.SetCurrentProfile(&profile)

	return profile
}

func UpdateProfileToken(profile *models.Profile, token *OToken) {
	if token.AccessToken != "" {
		profile.AccessToken = token.AccessToken
	}
	profile.TemporaryToken = token.TemporaryToken
	profile.PublicToken = token.PublicToken

	DB.Save(&profile)
}

func CreateProfile(profile *models.Profile, t *OToken, ui *GoogleUserInfo) {
	profile.AccessToken = t.AccessToken
	profile.TemporaryToken = t.TemporaryToken
	profile.PublicToken = t.PublicToken
	profile.Email = ui.Email
	profile.Name = ui.Name
	profile.GoogleID = ui.ID
	profile.AvatarUrl = ui.Picture

	DB.Create(&profile)
}
