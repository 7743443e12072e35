package utils

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateCodeFromChineseName 用姓名的拼音首字母加随机数字作为司机工号
func GenerateCodeFromChineseName(chineseName string) string {
	code := ""
	for _, py := range pinyin.LazyConvert(chineseName, nil) {
		code += py[:1]
	}

	for i := 0; i < 4; i++ {
		code += string(digits[rand.Intn(len(digits))])
	}

	return code
}

// 最近 7 天的工作时长，每天 6~10 小时
func GenerateRandomWorkHours() [7]float64 {
	var hours [7]float64
	for i := range hours {
		hours[i] = float64(rand.Intn(5) + 6)
	}
	return hours
}

func GenerateRandomDriver() *domain.Driver {
	name := GenerateRandomChineseName()

	return &domain.Driver{
		Name:               name,
		Code:               GenerateCodeFromChineseName(name),
		Past7DaysWorkHours: GenerateRandomWorkHours(),
	}
}

// 30% 的概率生成高价值订单（1000~5000），其余为 200~1000
func GenerateRandomOrderValue() float64 {
	var value float64
	if rand.Float64() < 0.3 {
		value = rand.Float64()*4000 + 1000
	} else {
		value = rand.Float64()*800 + 200
	}
	return math.Round(value*100) / 100
}

// GenerateRandomOrder 生成一个随机的待处理订单，截止时间在未来 3 天内
func GenerateRandomOrder(seq int, routes []*domain.Route) *domain.Order {
	route := routes[rand.Intn(len(routes))]
	deadline := time.Now().Add(time.Duration(rand.Float64() * float64(3*24*time.Hour)))

	return &domain.Order{
		Code:             fmt.Sprintf("ORD%03d", seq),
		Value:            GenerateRandomOrderValue(),
		RouteID:          route.ID,
		DeliveryDeadline: deadline,
		Status:           domain.OrderStatusPending,
		CustomerAddress:  fmt.Sprintf("Address %d, City District", seq),
		CustomerPhone:    fmt.Sprintf("98765%05d", seq),
	}
}
