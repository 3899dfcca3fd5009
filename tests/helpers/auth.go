package helpers

import (
	"crypto/rand"
	"math/big"
	"os"
	"testing"

	"github.com/authorizerdev/authorizer-go"
)

func randIndex(n int) int {
	i, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(i.Int64())
}

// RandomPassword returns a 12 character password that satisfies the
// authorizer strength policy (upper, lower, digit, special).
func RandomPassword() string {
	classes := []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*",
	}
	var all string
	for _, c := range classes {
		all += c
	}

	buf := make([]byte, 12)
	for i, c := range classes {
		buf[i] = c[randIndex(len(c))]
	}
	for i := len(classes); i < len(buf); i++ {
		buf[i] = all[randIndex(len(all))]
	}
	for i := range buf {
		j := randIndex(len(buf))
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// AcquireAccount signs the email up against the authorizer container and
// logs in, returning the access token. Signup failures are tolerated so
// the same account can be reused across tests within one container run.
func AcquireAccount(t *testing.T, authzURL, email, password string, roles []string) string {
	clientID := os.Getenv("AUTHZ_CLIENT_ID")
	if clientID == "" {
		clientID = "test_client"
	}
	client, err := authorizer.NewAuthorizerClient(clientID, authzURL, "", nil)
	if err != nil {
		t.Fatalf("Failed to create authorizer client: %v", err)
	}

	rolePtrs := make([]*string, len(roles))
	for i := range roles {
		rolePtrs[i] = &roles[i]
	}

	if _, err := client.SignUp(&authorizer.SignUpInput{
		Email:           &email,
		Password:        password,
		ConfirmPassword: password,
		Roles:           rolePtrs,
	}); err != nil {
		t.Logf("Signup for %s failed, trying login anyway: %v", email, err)
	}

	res, err := client.Login(&authorizer.LoginInput{
		Email:    &email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Login for %s failed: %v", email, err)
	}
	if res.AccessToken == nil {
		t.Fatalf("Login for %s returned no access token", email)
	}
	return *res.AccessToken
}
