package seed

import (
	"bytes"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/domain"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/repository"
	"github.com/sysu-ecnc-dev/greencart-logistics/backend/internal/utils"
)

//go:embed data/*.csv
var dataFS embed.FS

var (
	driverHeaders = []string{"姓名", "编号", "当前班次时长", "前7天工作时长"}
	routeHeaders  = []string{"编号", "距离", "交通状况", "基础时长", "描述"}
)

// readRecords 把 csv 的每一行转换成 表头 -> 值 的映射
func readRecords(r io.Reader, requiredHeaders []string) ([]map[string]string, error) {
	reader := csv.NewReader(r)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}
	for _, header := range requiredHeaders {
		if !slices.Contains(headers, header) {
			return nil, fmt.Errorf("没有找到列 %s", header)
		}
	}

	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = strings.TrimSpace(value)
		}
		records = append(records, record)
	}

	return records, nil
}

func ParseDrivers(r io.Reader) ([]*domain.Driver, error) {
	records, err := readRecords(r, driverHeaders)
	if err != nil {
		return nil, err
	}

	drivers := make([]*domain.Driver, 0, len(records))
	for _, record := range records {
		shiftHours, err := strconv.ParseFloat(record["当前班次时长"], 64)
		if err != nil {
			return nil, fmt.Errorf("司机 %s 的当前班次时长无效: %w", record["编号"], err)
		}

		days := strings.Split(record["前7天工作时长"], ";")
		if len(days) != 7 {
			return nil, fmt.Errorf("司机 %s 的工作时长必须是 7 天", record["编号"])
		}

		driver := &domain.Driver{
			Name:              record["姓名"],
			Code:              record["编号"],
			CurrentShiftHours: shiftHours,
		}
		for i, day := range days {
			hours, err := strconv.ParseFloat(day, 64)
			if err != nil {
				return nil, fmt.Errorf("司机 %s 的工作时长无效: %w", record["编号"], err)
			}
			driver.Past7DaysWorkHours[i] = hours
		}

		drivers = append(drivers, driver)
	}

	return drivers, nil
}

func ParseRoutes(r io.Reader) ([]*domain.Route, error) {
	records, err := readRecords(r, routeHeaders)
	if err != nil {
		return nil, err
	}

	routes := make([]*domain.Route, 0, len(records))
	for _, record := range records {
		distance, err := strconv.ParseFloat(record["距离"], 64)
		if err != nil {
			return nil, fmt.Errorf("路线 %s 的距离无效: %w", record["编号"], err)
		}

		baseTime, err := strconv.ParseFloat(record["基础时长"], 64)
		if err != nil {
			return nil, fmt.Errorf("路线 %s 的基础时长无效: %w", record["编号"], err)
		}

		level := domain.TrafficLevel(record["交通状况"])
		if !slices.Contains(domain.TrafficLevels, level) {
			return nil, fmt.Errorf("路线 %s 的交通状况无效: %s", record["编号"], level)
		}

		routes = append(routes, &domain.Route{
			Code:            record["编号"],
			DistanceKm:      distance,
			TrafficLevel:    level,
			BaseTimeMinutes: baseTime,
			Description:     record["描述"],
		})
	}

	return routes, nil
}

func parseEmbedded[T any](name string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return parse(bytes.NewReader(data))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// SeedSampleData 插入示例司机、路线和 orders 个随机订单，已存在的司机和路线会被跳过
func SeedSampleData(r *repository.Repository, orders int) error {
	drivers, err := parseEmbedded("data/drivers.csv", ParseDrivers)
	if err != nil {
		return err
	}

	routes, err := parseEmbedded("data/routes.csv", ParseRoutes)
	if err != nil {
		return err
	}

	for _, driver := range drivers {
		if err := r.CreateDriver(driver); err != nil {
			if isUniqueViolation(err) {
				slog.Info("司机已存在，跳过", "code", driver.Code)
				continue
			}
			return err
		}
	}
	slog.Info("插入司机完成", "count", len(drivers))

	for _, route := range routes {
		if err := r.CreateRoute(route); err != nil {
			if isUniqueViolation(err) {
				slog.Info("路线已存在，跳过", "code", route.Code)
				continue
			}
			return err
		}
	}
	slog.Info("插入路线完成", "count", len(routes))

	return SeedRandomOrders(r, orders)
}

// SeedRandomOrders 在现有的路线上生成随机的待处理订单，编号接着已有的订单往后排
func SeedRandomOrders(r *repository.Repository, n int) error {
	routes, err := r.GetAllRoutes()
	if err != nil {
		return err
	}
	if len(routes) == 0 {
		return errors.New("没有可用的路线")
	}

	existing, err := r.GetAllOrders("")
	if err != nil {
		return err
	}

	cnt := 0
	for i := 1; i <= n; i++ {
		order := utils.GenerateRandomOrder(len(existing)+i, routes)
		if err := r.CreateOrder(order); err != nil {
			slog.Error("无法插入订单", "code", order.Code, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("插入订单完成", "count", cnt)
	return nil
}
