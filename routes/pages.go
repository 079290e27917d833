package routes

import (
	"github.com/gorilla/mux"

	"github.com/Buzzy89/client/handlers"
)

func CreatePageRoutes(d *handlers.Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/", handlers.Home(d)).Methods("GET")
	router.HandleFunc("/search", handlers.SearchPosts(d)).Methods("GET")

	router.HandleFunc("/createpost", handlers.CreatePostPage(d)).Methods("GET")
	router.HandleFunc("/createpost", handlers.CreatePost(d)).Methods("POST")
	router.HandleFunc("/post/{id}", handlers.PostDetail(d)).Methods("GET")
	router.HandleFunc("/post/{id}/edit", handlers.EditPostPage(d)).Methods("GET")
	router.HandleFunc("/post/{id}/edit", handlers.EditPost(d)).Methods("POST")
	router.HandleFunc("/post/{id}/comments", handlers.SubmitComment(d)).Methods("POST")
	router.HandleFunc("/comments/{commentId}/delete", handlers.DeleteComment(d)).Methods("POST")

	router.HandleFunc("/profile", handlers.OwnProfile(d)).Methods("GET")
	router.HandleFunc("/profile/avatar", handlers.UploadAvatar(d)).Methods("POST")
	router.HandleFunc("/profile/{id}", handlers.PublicProfile(d)).Methods("GET")

	router.HandleFunc("/wikidata/search", handlers.SearchWikiData(d)).Methods("GET")

	return router
}
