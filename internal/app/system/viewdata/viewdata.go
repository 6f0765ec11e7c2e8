// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// BaseVM contains the fields every page template expects. Embed it in
// feature-specific view models:
//
//	type pageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	IsLoggedIn  bool
	Role        string
	UserName    string
	UserChapter string // chapter name for affiliated users

	Title       string
	BackURL     string
	CurrentPath string
}

// NewBaseVM builds a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}

	if user, ok := auth.CurrentUser(r); ok {
		vm.UserChapter = user.ChapterName
	}

	return vm
}
