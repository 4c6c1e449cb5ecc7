package dto

// CreatePostRequest is the body of POST /feed/posts.
type CreatePostRequest struct {
	Content  string  `json:"content" binding:"required"`
	Category string  `json:"category" binding:"omitempty,post_category"`
	ImageURL *string `json:"imageUrl" binding:"omitempty,url"`
}

// ToggleLikeRequest carries the liked state the client currently displays.
type ToggleLikeRequest struct {
	CurrentlyLiked bool `json:"currentlyLiked"`
	// DisplayedLikeCount is the count the client rendered before the click.
	DisplayedLikeCount int `json:"displayedLikeCount" binding:"min=0"`
}

// CreateCommentRequest is the body of POST /feed/posts/:id/comments.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateResourceRequest is the body of POST /resources.
type CreateResourceRequest struct {
	CourseCode   string  `json:"courseCode" binding:"required,max=32"`
	Title        string  `json:"title" binding:"required,max=200"`
	FileURL      string  `json:"fileUrl" binding:"required,url"`
	DepartmentID *string `json:"departmentId" binding:"omitempty,uuid"`
	ResourceType *string `json:"resourceType" binding:"omitempty,max=50"`
}

// UpdateProfileRequest is the body of PATCH /profile.
type UpdateProfileRequest struct {
	FullName     *string   `json:"fullName" binding:"omitempty,min=1,max=120"`
	DepartmentID *string   `json:"departmentId" binding:"omitempty,uuid"`
	Bio          *string   `json:"bio" binding:"omitempty,max=500"`
	AvatarURL    *string   `json:"avatarUrl" binding:"omitempty,url"`
	Skills       *[]string `json:"skills" binding:"omitempty,dive,min=1,max=50"`
	Interests    *[]string `json:"interests" binding:"omitempty,dive,min=1,max=50"`
	Year         *int      `json:"year" binding:"omitempty,min=1,max=10"`
}

// CreateCourseReviewRequest is the body of POST /course-reviews.
type CreateCourseReviewRequest struct {
	CourseCode   string  `json:"courseCode" binding:"required,max=32"`
	Rating       int     `json:"rating" binding:"required,min=1,max=5"`
	Comment      *string `json:"comment" binding:"omitempty,max=2000"`
	DepartmentID *string `json:"departmentId" binding:"omitempty,uuid"`
}

// CategoryOption is one entry of the feed tab selector.
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
