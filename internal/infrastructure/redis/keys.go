package redis

// ストア上のキー配置
// class:<id> と rsvp:<id> はフィールドがすべて文字列のハッシュ
const classIDsKey = "classes"

func classKey(id string) string {
	return "class:" + id
}

func registrationKey(id string) string {
	return "rsvp:" + id
}

func classRegistrationsKey(classID string) string {
	return "rsvps:" + classID
}
