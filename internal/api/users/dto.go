package users

type UserDTO struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
	Supervisor *string `json:"supervisor"`
	IsAdmin    bool    `json:"is_admin"`
}

type VotesDTO struct {
	ImagesSubmitted int64 `json:"imagesSubmitted"`
	VideosSubmitted int64 `json:"videosSubmitted"`
}

type MeResponse struct {
	User  UserDTO  `json:"user"`
	Votes VotesDTO `json:"votes"`
}
