package productcontroller

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/cache"
	"github.com/batibatii/textilecom-sub000/models"
)

// ImportProductsFromExcel bulk-creates or updates products from a sheet in
// the same column layout ExportProductsToExcel produces. Rows with an ID
// update that product; rows without one create a new product.
func ImportProductsFromExcel(db *gorm.DB, pc cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file is required"})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to open file"})
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}

		wb, err := xlsx.OpenBinary(data)
		if err != nil || len(wb.Sheets) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid Excel file"})
			return
		}

		sheet := wb.Sheets[0]
		imported := 0
		var rowErrors []string

		for i, row := range sheet.Rows {
			if i == 0 {
				continue // header
			}
			if len(row.Cells) < 12 {
				continue
			}

			cell := func(n int) string {
				return strings.TrimSpace(row.Cells[n].String())
			}

			title := cell(1)
			if title == "" {
				continue
			}

			amount, err := decimal.NewFromString(cell(4))
			if err != nil || !amount.IsPositive() {
				rowErrors = append(rowErrors, "row "+strconv.Itoa(i+1)+": invalid amount")
				continue
			}

			var discount *models.Discount
			if rateStr := cell(6); rateStr != "" {
				rate, err := decimal.NewFromString(rateStr)
				if err != nil {
					rowErrors = append(rowErrors, "row "+strconv.Itoa(i+1)+": invalid discount rate")
					continue
				}
				if rate.IsPositive() {
					discount = &models.Discount{Rate: rate}
				}
			}

			var sizes []string
			if s := cell(7); s != "" {
				for _, size := range strings.Split(s, ",") {
					if size = strings.TrimSpace(size); size != "" {
						sizes = append(sizes, size)
					}
				}
			}

			stock, _ := strconv.Atoi(cell(11))

			product := models.Product{
				ID:          cell(0),
				Title:       title,
				Brand:       cell(2),
				Description: cell(3),
				Price:       models.Money{Amount: amount, Currency: cell(5)},
				Discount:    discount,
				Sizes:       sizes,
				Image:       cell(8),
				PriceRef:    cell(9),
				TaxRate:     cell(10),
				Stock:       stock,
			}
			if product.ID == "" {
				product.ID = uuid.NewString()
			}

			if err := db.Save(&product).Error; err != nil {
				rowErrors = append(rowErrors, "row "+strconv.Itoa(i+1)+": "+err.Error())
				continue
			}
			imported++
		}

		invalidateListing(pc)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"imported": imported,
			"errors":   rowErrors,
		})
	}
}
