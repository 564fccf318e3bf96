package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"echofeed/pkg/comments"
	"echofeed/pkg/handlers"
	"echofeed/pkg/middleware"
	"echofeed/pkg/notifications"
	"echofeed/pkg/posts"
	"echofeed/pkg/storage"
	"echofeed/pkg/user"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func main() {
	app := &Application{}

	flag.StringVar(&app.ServerAddr, "addr", "127.0.0.1:8000", "address to listen on")
	flag.StringVar(&app.RedisAddr, "redis-addr", "localhost:6379", "redis address for the storage substrate")
	flag.StringVar(&app.RedisPassword, "redis-password", "", "redis password")
	flag.DurationVar(&app.Latency, "latency", 200*time.Millisecond, "simulated network latency per store operation")
	flag.Parse()

	app.Run()
}

type Application struct {
	ServerAddr    string
	RedisAddr     string
	RedisPassword string
	Latency       time.Duration

	HTTPServer *http.Server
}

func (a *Application) Run() {
	zapLogger, _ := zap.NewProduction()
	defer zapLogger.Sync() // flushes buffer, if any
	logger := zapLogger.Sugar()

	kv := a.connectStorage(logger)

	postsRepo := posts.NewPostsRepo(kv, logger, a.Latency)
	commentsRepo := comments.NewCommentsRepo(kv, logger, a.Latency)
	usersRepo := user.NewUsersRepo(postsRepo, a.Latency)
	notificationsRepo := notifications.NewNotificationsRepo(notifications.Seed(), a.Latency)

	postsHandler := &handlers.PostHandler{
		PostsRepo:    postsRepo,
		CommentsRepo: commentsRepo,
		Logger:       logger,
	}

	commentsHandler := &handlers.CommentHandler{
		CommentsRepo:      commentsRepo,
		PostsRepo:         postsRepo,
		NotificationsRepo: notificationsRepo,
		Logger:            logger,
	}

	usersHandler := &handlers.UserHandler{
		UsersRepo:         usersRepo,
		NotificationsRepo: notificationsRepo,
		Logger:            logger,
	}

	notificationsHandler := &handlers.NotificationHandler{
		NotificationsRepo: notificationsRepo,
		Logger:            logger,
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/").Subrouter()

	api.HandleFunc("/posts/", postsHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/posts", postsHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/post/{id}", postsHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/post/{id}", postsHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/post/{id}", postsHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/post/{id}/like", postsHandler.Like).Methods(http.MethodPost)
	api.HandleFunc("/post/{id}/unlike", postsHandler.Unlike).Methods(http.MethodPost)

	api.HandleFunc("/post/{post_id}/comments", commentsHandler.GetByPostID).Methods(http.MethodGet)
	api.HandleFunc("/post/{post_id}/comments", commentsHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/comment/{id}", commentsHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/comment/{id}", commentsHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/user/{username}", usersHandler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/user/{username}/posts", usersHandler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/user/{username}/follow", usersHandler.Follow).Methods(http.MethodPost)
	api.HandleFunc("/user/{username}/unfollow", usersHandler.Unfollow).Methods(http.MethodPost)
	api.HandleFunc("/user/{username}/follows/{target}", usersHandler.IsFollowing).Methods(http.MethodGet)

	api.HandleFunc("/notifications", notificationsHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/notifications", notificationsHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/notifications/unread_count", notificationsHandler.UnreadCount).Methods(http.MethodGet)
	api.HandleFunc("/notifications/read_all", notificationsHandler.MarkAllAsRead).Methods(http.MethodPost)
	api.HandleFunc("/notification/{id}/read", notificationsHandler.MarkAsRead).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteResponse(w, "not found", http.StatusNotFound)
	})

	handler := middleware.Log(logger, r)
	handler = middleware.Recover(logger, handler)

	srv := &http.Server{
		Handler:      handler,
		Addr:         a.ServerAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	a.HTTPServer = srv

	logger.Infof("Started server at %s", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}

// connectStorage dials redis for the substrate. When redis is unreachable
// the app still comes up on an in-memory substrate: state then lives only
// for the process lifetime, which matches the acceptable-loss design.
func (a *Application) connectStorage(logger *zap.SugaredLogger) storage.KV {
	rdb := redis.NewClient(&redis.Options{
		Addr:     a.RedisAddr,
		Password: a.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf("redis unreachable at %s, falling back to in-memory storage: %v", a.RedisAddr, err)
		return storage.NewMemoryKV()
	}

	return storage.NewRedisKV(rdb)
}
