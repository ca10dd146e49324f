package http_handlers

import (
	"html/template"
	"net/http"
)

// verifiedPage is served after a successful email verification; it
// bounces the browser to the frontend.
var verifiedPage = template.Must(template.New("verified").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Email Verified</title>
    <meta http-equiv="refresh" content="3;url={{.RedirectURL}}">
</head>
<body>
    <h1>Email verified successfully</h1>
    <p>You will be redirected shortly. If not, <a href="{{.RedirectURL}}">click here</a>.</p>
</body>
</html>
`))

func writeVerifiedPage(w http.ResponseWriter, redirectURL string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = verifiedPage.Execute(w, struct{ RedirectURL string }{RedirectURL: redirectURL})
}
