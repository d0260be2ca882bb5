package schemas

// CreateRoomRequest represents the body of a request to create a video room.
type CreateRoomRequest struct {
	RoomName string `json:"room_name"`
}

// RoomInfo describes the provider room the call widget binds to.
type RoomInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CreateRoomResponse is returned by the create-room endpoint. Exists is true
// when the provider already had the room; that is a success, not an error.
type CreateRoomResponse struct {
	Success bool     `json:"success"`
	Exists  bool     `json:"exists"`
	Room    RoomInfo `json:"room"`
}
